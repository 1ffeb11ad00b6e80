package types

import "time"

// WordPDFConfig holds settings for the Word to PDF pipeline.
type WordPDFConfig struct {
	// Driver selects the word processor driver: "auto", "word", or "soffice".
	// "auto" prefers the Word automation interface where present and falls
	// back to LibreOffice.
	Driver string `json:"driver" yaml:"driver"`

	// SofficePath overrides the LibreOffice binary location. Empty means
	// probe the well-known install locations and PATH.
	SofficePath string `json:"soffice_path,omitempty" yaml:"soffice_path,omitempty"`

	// Timeout bounds a single document conversion (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// MarkdownWordConfig holds settings for the Markdown to Word pipeline.
type MarkdownWordConfig struct {
	// PandocPath overrides the Pandoc binary location. Empty means PATH,
	// then the managed install directory.
	PandocPath string `json:"pandoc_path,omitempty" yaml:"pandoc_path,omitempty"`

	// AutoInstall downloads Pandoc into the user data directory when the
	// binary cannot be found (default true).
	AutoInstall bool `json:"auto_install" yaml:"auto_install"`

	// TOC generates a table of contents from document headings (default true).
	TOC bool `json:"toc" yaml:"toc"`

	// TOCDepth is the maximum heading level included in the TOC (default 3).
	TOCDepth int `json:"toc_depth" yaml:"toc_depth"`

	// Extensions lists the Markdown reader extensions appended to the
	// base "markdown" format.
	Extensions []string `json:"extensions" yaml:"extensions"`

	// Timeout bounds a single engine invocation (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PDFImagesConfig holds settings for the PDF to images pipeline.
type PDFImagesConfig struct {
	// Format is the page image format: "png" or "jpg".
	Format string `json:"format" yaml:"format"`

	// DPI is the render resolution (default 144).
	DPI int `json:"dpi" yaml:"dpi"`

	// JPEGQuality applies to jpg output (default 92).
	JPEGQuality int `json:"jpeg_quality" yaml:"jpeg_quality"`

	// Timeout bounds a single engine invocation (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LoggingConfig holds settings for the per-pipeline log files.
type LoggingConfig struct {
	// Dir is the directory for log files. Empty means the user state
	// directory (e.g. ~/.local/state/docsmith).
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Verbose enables debug-level entries.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// HistoryConfig holds settings for the conversion ledger.
type HistoryConfig struct {
	// Enabled records every conversion attempt in the ledger (default true).
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Dir is the directory for the ledger database. Empty means the user
	// state directory.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Config groups all pipeline and ambient settings.
type Config struct {
	WordPDF      WordPDFConfig      `json:"word2pdf" yaml:"word2pdf"`
	MarkdownWord MarkdownWordConfig `json:"md2word" yaml:"md2word"`
	PDFImages    PDFImagesConfig    `json:"pdf2img" yaml:"pdf2img"`
	Logging      LoggingConfig      `json:"logging" yaml:"logging"`
	History      HistoryConfig      `json:"history" yaml:"history"`
}

// DefaultMarkdownExtensions are the Markdown reader extensions the tool has
// always passed to Pandoc.
var DefaultMarkdownExtensions = []string{
	"emoji",
	"autolink_bare_uris",
	"lists_without_preceding_blankline",
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		WordPDF: WordPDFConfig{
			Driver:  "auto",
			Timeout: 2 * time.Minute,
		},
		MarkdownWord: MarkdownWordConfig{
			AutoInstall: true,
			TOC:         true,
			TOCDepth:    3,
			Extensions:  DefaultMarkdownExtensions,
			Timeout:     2 * time.Minute,
		},
		PDFImages: PDFImagesConfig{
			Format:      "png",
			DPI:         144,
			JPEGQuality: 92,
			Timeout:     2 * time.Minute,
		},
		History: HistoryConfig{Enabled: true},
	}
}
