package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/phyten/jscomments/internal/detect"
	"github.com/phyten/jscomments/internal/link"
	"github.com/phyten/jscomments/internal/model"
	"github.com/phyten/jscomments/internal/progress"
	"github.com/phyten/jscomments/internal/scan"
)

const maxWorkers = 64

// errSkip は走査対象外のファイルを表す（エラーとしては報告しない）
var errSkip = errors.New("skip")

// Run は指定されたオプションに従ってリポジトリ内の JS 系ファイルを走査し、
// 見つかったコメント範囲の一覧を返します。
//
// ファイル単位の失敗は Result.Errors に集約され、走査全体は中断しません。
// ctx がキャンセルされた場合は ctx.Err() を返します。
func Run(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := scan.ParseCommentTypes(string(opts.CommentTypes)); err != nil {
		return nil, err
	}
	if len(opts.PathRegex) > 0 && len(opts.PathRegexCompiled) == 0 {
		rx, err := CompilePathRegex(opts.PathRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --path-regex: %w", err)
		}
		opts.PathRegexCompiled = rx
	}
	log := opts.logger()

	observer := opts.ProgressObserver
	if observer == nil {
		observer = progress.NoopObserver{}
	}
	est := progress.NewEstimator(0, progress.Config{})
	observer.Publish(est.Begin(progress.StageList, 0))

	files, err := listFiles(ctx, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("listed files", "repo", opts.RepoDir, "count", len(files))

	observer.Publish(est.Begin(progress.StageScan, len(files)))
	items, errs, scanned := scanAll(ctx, opts, files, func(found int) {
		if snap, ok := est.Advance(1, found); ok {
			observer.Publish(snap)
		}
	})
	observer.Done(est.Complete())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := buildResult(opts, items, errs, scanned, start)
	attachLinks(ctx, opts, res)
	return res, nil
}

// ScanFiles scans the given RepoDir-relative files without listing the tree.
// PathRegex and Excludes still apply; files that are not JS family sources are
// skipped silently, as in Run.
func ScanFiles(ctx context.Context, opts Options, files []string) (*Result, error) {
	start := time.Now()
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := scan.ParseCommentTypes(string(opts.CommentTypes)); err != nil {
		return nil, err
	}
	if len(opts.PathRegex) > 0 && len(opts.PathRegexCompiled) == 0 {
		rx, err := CompilePathRegex(opts.PathRegex)
		if err != nil {
			return nil, fmt.Errorf("invalid --path-regex: %w", err)
		}
		opts.PathRegexCompiled = rx
	}
	var keep []string
	for _, f := range filterPathsByRegex(files, opts.PathRegexCompiled) {
		if !excludedBy(opts.Excludes, f) {
			keep = append(keep, f)
		}
	}
	items, errs, scanned := scanAll(ctx, opts, keep, func(int) {})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res := buildResult(opts, items, errs, scanned, start)
	attachLinks(ctx, opts, res)
	return res, nil
}

func scanAll(ctx context.Context, opts Options, files []string, advance func(found int)) ([]model.Comment, []ItemError, int) {
	type job struct {
		idx  int
		file string
	}
	type outcome struct {
		items []model.Comment
		err   *ItemError
		seen  bool
	}
	out := make([]outcome, len(files))
	jobs := make(chan job)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	worker := func() {
		defer wg.Done()
		for j := range jobs {
			items, err := scanFile(opts, j.file)
			switch {
			case errors.Is(err, errSkip):
			case err != nil:
				ie := newItemError(j.file, err)
				out[j.idx].err = &ie
			default:
				out[j.idx].seen = true
				out[j.idx].items = items
			}
			mu.Lock()
			advance(len(items))
			mu.Unlock()
		}
	}

	nw := opts.Jobs
	if nw < 1 {
		nw = runtime.NumCPU()
	}
	if nw > maxWorkers {
		nw = maxWorkers
	}
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go worker()
	}
feed:
	for i, f := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, file: f}:
		}
	}
	close(jobs)
	wg.Wait()

	var (
		items   []model.Comment
		errs    []ItemError
		scanned int
	)
	for _, o := range out {
		if o.err != nil {
			errs = append(errs, *o.err)
			continue
		}
		if o.seen {
			scanned++
		}
		items = append(items, o.items...)
	}
	return items, errs, scanned
}

// attachLinks fills Comment.URL when links were requested. A checkout
// without a usable remote or HEAD only produces a warning.
func attachLinks(ctx context.Context, opts Options, res *Result) {
	if !opts.WithLinks || len(res.Items) == 0 {
		return
	}
	base, err := link.Resolve(ctx, opts.Runner, opts.RepoDir, opts.LinkRemote, opts.LinkScheme)
	if err != nil {
		opts.logger().Warn("links disabled", "repo", opts.RepoDir, "err", err)
		return
	}
	base.Attach(res.Items)
	res.CommitURL = base.CommitURL()
}

func buildResult(opts Options, items []model.Comment, errs []ItemError, scanned int, start time.Time) *Result {
	// stable order by file:line:col
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Span.StartLine != b.Span.StartLine {
			return a.Span.StartLine < b.Span.StartLine
		}
		return a.Span.StartCol < b.Span.StartCol
	})
	sort.Slice(errs, func(i, j int) bool {
		if errs[i].File == errs[j].File {
			return errs[i].Stage < errs[j].Stage
		}
		return errs[i].File < errs[j].File
	})

	counts := make(map[string]int)
	for _, it := range items {
		counts[it.Kind.String()]++
	}
	if len(errs) > 0 {
		opts.logger().Warn("some files could not be scanned", "errors", len(errs))
	}

	return &Result{
		Items:      items,
		Files:      scanned,
		Total:      len(items),
		Counts:     counts,
		ElapsedMS:  msSince(start),
		Errors:     errs,
		ErrorCount: len(errs),
	}
}

// ScanSource はメモリ上のソース 1 件を走査してファイル単位のレコードを返します。
func ScanSource(file string, info detect.Info, src string, opts Options) []model.Comment {
	found := scan.All(src, opts.ScanOptions(info.JSX))
	if len(found) == 0 {
		return nil
	}
	items := make([]model.Comment, 0, len(found))
	for _, c := range found {
		items = append(items, model.FromScan(file, info.Name, src, c, opts.WithText))
	}
	return items
}

// stageError はファイル処理のどの段階で失敗したかを保持します。
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func scanFile(opts Options, rel string) ([]model.Comment, error) {
	abs := filepath.Join(opts.RepoDir, filepath.FromSlash(rel))
	st, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// deleted from the work tree but still in the index
			return nil, errSkip
		}
		return nil, &stageError{stage: "stat", err: err}
	}
	if !st.Mode().IsRegular() {
		return nil, errSkip
	}
	if opts.MaxFileBytes > 0 && st.Size() > int64(opts.MaxFileBytes) {
		opts.logger().Debug("skipping large file", "file", rel, "size", st.Size(), "max", opts.MaxFileBytes)
		return nil, errSkip
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &stageError{stage: "read", err: err}
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil, errSkip
	}
	info := detect.FromPathAndContent(rel, data)
	if !info.Known() || !detect.MatchesLang(info, opts.DetectLangs) {
		return nil, errSkip
	}
	if !utf8.Valid(data) {
		return nil, &stageError{stage: "decode", err: errors.New("file is not valid UTF-8")}
	}
	return ScanSource(rel, info, string(data), opts), nil
}

func newItemError(file string, err error) ItemError {
	stage := "scan"
	var se *stageError
	if errors.As(err, &se) {
		stage = se.stage
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "unknown error"
	}
	return ItemError{File: file, Stage: stage, Message: msg}
}

func msSince(t time.Time) int64 { return time.Since(t).Milliseconds() }
