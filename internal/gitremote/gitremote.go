// Package gitremote reads the hosting coordinates of a git checkout.
package gitremote

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/jscomments/internal/execx"
)

// Info は Git リモートから抽出したホスト・オーナー・リポジトリ情報です。
type Info struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// Detect は repoDir のリモート remote (空なら origin) の URL を解析します。
func Detect(ctx context.Context, runner execx.Runner, repoDir, remote string) (Info, error) {
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	remote = strings.TrimSpace(remote)
	if remote == "" {
		remote = "origin"
	}
	key := "remote." + remote + ".url"
	stdout, _, err := runner.Run(ctx, repoDir, "git", "config", "--get", key)
	if err != nil {
		return Info{}, fmt.Errorf("read %s: %w", key, err)
	}
	raw := strings.TrimSpace(string(stdout))
	if raw == "" {
		return Info{}, fmt.Errorf("%s is empty", key)
	}
	return Parse(raw)
}

// Head は HEAD のコミット SHA を返します。
func Head(ctx context.Context, runner execx.Runner, repoDir string) (string, error) {
	if runner == nil {
		runner = execx.DefaultRunner()
	}
	stdout, _, err := runner.Run(ctx, repoDir, "git", "rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	sha := strings.TrimSpace(string(stdout))
	if sha == "" {
		return "", errors.New("resolve HEAD: empty output")
	}
	return sha, nil
}

// Parse は scp 形式 (git@host:owner/repo.git) と URL 形式のリモートを解析します。
func Parse(raw string) (Info, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Info{}, errors.New("empty remote url")
	}
	if !strings.Contains(raw, "://") {
		userHost, p, ok := strings.Cut(raw, ":")
		if !ok || !strings.Contains(userHost, "@") {
			return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
		}
		_, host, _ := strings.Cut(userHost, "@")
		return build(host, p, "")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "http", "https":
	case "ssh", "git":
		scheme = ""
	default:
		return Info{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		return Info{}, fmt.Errorf("invalid remote path: %w", err)
	}
	return build(u.Host, p, scheme)
}

func build(host, p, scheme string) (Info, error) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return Info{}, errors.New("missing host in remote url")
	}
	owner, repo, err := splitPath(p)
	if err != nil {
		return Info{}, err
	}
	return Info{Host: host, Owner: owner, Repo: repo, Scheme: scheme}, nil
}

func splitPath(p string) (string, string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	cleaned = strings.Trim(filepath.ToSlash(cleaned), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner, repo := segments[len(segments)-2], segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// WithScheme は http/https の上書きを適用します。それ以外の値は無視されます。
func (i Info) WithScheme(override string) Info {
	switch s := strings.ToLower(strings.TrimSpace(override)); s {
	case "http", "https":
		i.Scheme = s
	}
	return i
}

// NormalizedScheme は http 以外を https とみなします。
func (i Info) NormalizedScheme() string {
	if strings.EqualFold(strings.TrimSpace(i.Scheme), "http") {
		return "http"
	}
	return "https"
}

// WebURL はリポジトリのブラウズ用ベース URL を返します。
func (i Info) WebURL() string {
	host := strings.TrimSuffix(i.Host, "/")
	return fmt.Sprintf("%s://%s/%s/%s", i.NormalizedScheme(), host, url.PathEscape(i.Owner), url.PathEscape(i.Repo))
}

// BlobPath はファイルパスをセグメント単位でエスケープします。
func BlobPath(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	for idx, part := range parts {
		parts[idx] = url.PathEscape(part)
	}
	return path.Join(parts...)
}
