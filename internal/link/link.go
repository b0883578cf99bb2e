// Package link builds permalinks to comments on a git hosting service.
package link

import (
	"context"
	"fmt"
	"strings"

	"github.com/phyten/jscomments/internal/execx"
	"github.com/phyten/jscomments/internal/gitremote"
	"github.com/phyten/jscomments/internal/model"
)

// Blob はコミット SHA・ファイル・行範囲から GitHub 互換の blob URL を生成します。
// endLine が startLine 以下なら単一行のアンカーになります。
func Blob(info gitremote.Info, sha, file string, startLine, endLine int) string {
	if sha == "" || file == "" || startLine <= 0 || info.Host == "" {
		return ""
	}
	anchor := fmt.Sprintf("#L%d", startLine)
	if endLine > startLine {
		anchor += fmt.Sprintf("-L%d", endLine)
	}
	return fmt.Sprintf("%s/blob/%s/%s%s", info.WebURL(), sha, gitremote.BlobPath(file), anchor)
}

// Commit はコミット詳細ページの URL を返します。
func Commit(info gitremote.Info, sha string) string {
	if sha == "" || info.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s/commit/%s", info.WebURL(), sha)
}

// Base pins links to one remote and commit.
type Base struct {
	Info gitremote.Info
	SHA  string
}

// Resolve reads the remote and HEAD of repoDir. scheme may force http or https.
func Resolve(ctx context.Context, runner execx.Runner, repoDir, remote, scheme string) (Base, error) {
	info, err := gitremote.Detect(ctx, runner, repoDir, remote)
	if err != nil {
		return Base{}, err
	}
	sha, err := gitremote.Head(ctx, runner, repoDir)
	if err != nil {
		return Base{}, err
	}
	return Base{Info: info.WithScheme(scheme), SHA: sha}, nil
}

// For returns the permalink of c. Kinds that may cross lines cover every line
// they span; line comments and hashbangs point at their first line.
func (b Base) For(c model.Comment) string {
	end := c.Span.EndLine
	if !c.Kind.Multiline() {
		end = c.Span.StartLine
	}
	return Blob(b.Info, b.SHA, strings.TrimPrefix(c.File, "./"), c.Span.StartLine, end)
}

// CommitURL links the commit the permalinks are pinned to.
func (b Base) CommitURL() string {
	return Commit(b.Info, b.SHA)
}

// Attach sets URL on every item.
func (b Base) Attach(items []model.Comment) {
	for i := range items {
		items[i].URL = b.For(items[i])
	}
}
