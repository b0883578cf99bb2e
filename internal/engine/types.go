package engine

import (
	"log/slog"
	"regexp"

	"github.com/phyten/jscomments/internal/execx"
	"github.com/phyten/jscomments/internal/model"
	"github.com/phyten/jscomments/internal/progress"
	"github.com/phyten/jscomments/internal/scan"
)

// ItemError は 1 ファイルの処理に失敗した際の情報を表す
type ItemError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// Options は実行オプション
type Options struct {
	CommentTypes      scan.CommentTypes
	TemplateText      bool
	WithText          bool
	Jobs              int
	RepoDir           string
	NoGit             bool
	Progress          bool
	DetectLangs       []string
	Paths             []string
	Excludes          []string
	PathRegex         []string
	PathRegexCompiled []*regexp.Regexp
	MaxFileBytes      int
	ExcludeTypical    bool
	// WithLinks は各コメントにホスティングサービス上のパーマリンクを付与します。
	WithLinks        bool
	LinkRemote       string
	LinkScheme       string
	Runner           execx.Runner      `json:"-"`
	Logger           *slog.Logger      `json:"-"`
	ProgressObserver progress.Observer `json:"-"`
}

// Result は出力
type Result struct {
	Items      []model.Comment `json:"items"`
	Files      int             `json:"files"`
	Total      int             `json:"total"`
	Counts     map[string]int  `json:"counts"`
	ElapsedMS  int64           `json:"elapsed_ms"`
	Errors     []ItemError     `json:"errors,omitempty"`
	ErrorCount int             `json:"error_count"`
	// CommitURL はリンク生成時に固定したコミットのページです。
	CommitURL string `json:"commit_url,omitempty"`
}

// ScanOptions は走査器へ渡すオプションを組み立てます。
func (o Options) ScanOptions(jsx bool) scan.Options {
	return scan.Options{
		CommentTypes: o.CommentTypes,
		DisableJSX:   !jsx,
		TemplateText: o.TemplateText,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) runner() execx.Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return execx.DefaultRunner()
}
