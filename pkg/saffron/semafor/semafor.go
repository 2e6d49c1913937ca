// Package semafor wraps the Semafor semantic parser.
//
// Semafor is run in interactive mode as a single long-lived subprocess.
// The adapter feeds it one CoNLL-encoded sentence at a time over stdin and
// reads one JSON response per request from stdout, serializing all callers
// onto that one process. Interactive mode is not in the stable Semafor 2.1
// release; build from https://github.com/Noahs-ARK/semafor.
package semafor

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cognicore/saffron/pkg/saffron/internalerr"
)

// sentinel is the line Semafor prints after its startup banner and after
// each response. It frames units of output in an otherwise unstructured
// stream.
const sentinel = ">>>"

// Config locates the Semafor installation
type Config struct {
	// Home is the Semafor checkout/install directory. Required.
	Home string
	// ModelDir holds the Malt models. Defaults to Home.
	ModelDir string
}

// ConfigFromEnv reads SEMAFOR_HOME and MALT_MODEL_DIR
func ConfigFromEnv() (Config, error) {
	home := os.Getenv("SEMAFOR_HOME")
	if home == "" {
		return Config{}, fmt.Errorf("%w: SEMAFOR_HOME not set", internalerr.ErrInvalidConfig)
	}
	modelDir := os.Getenv("MALT_MODEL_DIR")
	if modelDir == "" {
		modelDir = home
	}
	return Config{Home: home, ModelDir: modelDir}, nil
}

// Launcher starts the external parser process and hands its stdin and
// stdout to the adapter. Tests substitute a fake.
type Launcher interface {
	Start() (stdin io.WriteCloser, stdout io.ReadCloser, err error)
}

type execLauncher struct {
	cfg Config
}

func (l execLauncher) Start() (io.WriteCloser, io.ReadCloser, error) {
	jar := filepath.Join(l.cfg.Home, "target", "Semafor-3.0-alpha-04.jar")
	cmd := exec.Command("java", "-Xms4g", "-Xmx4g", "-cp", jar,
		"edu.cmu.cs.lti.ark.fn.SemaforInteractive",
		"model-dir:"+l.cfg.ModelDir)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	return stdin, stdout, nil
}

// Parser is a handle on the single long-lived Semafor process. The process
// is started lazily on the first call and lives for the rest of the
// program; there is no shutdown, no restart and no pooling. A Parser is
// safe for concurrent use: one mutex serializes every caller's full
// write-then-read round trip, so requests are never interleaved on the
// wire. Pass one Parser to everything that needs Semafor.
type Parser struct {
	mu       sync.Mutex
	launcher Launcher
	in       io.Writer
	out      *bufio.Reader
	started  bool
}

// New returns a Parser that will launch Semafor per cfg on first use
func New(cfg Config) *Parser {
	return &Parser{launcher: execLauncher{cfg: cfg}}
}

// NewWithLauncher returns a Parser backed by a custom process launcher
func NewWithLauncher(l Launcher) *Parser {
	return &Parser{launcher: l}
}

// Span is a token index range [Start, End) into a sentence
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

// Annotation is a named set of spans: a frame target or a frame element
type Annotation struct {
	Name  string `json:"name"`
	Spans []Span `json:"spans"`
}

// AnnotationSet groups the frame elements of one analysis
type AnnotationSet struct {
	FrameElements []Annotation `json:"frameElements"`
}

// ResultFrame is one semantic frame as reported by Semafor
type ResultFrame struct {
	Target         Annotation      `json:"target"`
	AnnotationSets []AnnotationSet `json:"annotationSets"`
}

// Result is Semafor's response for one sentence. A non-empty Error means
// the parse failed for this sentence; Frames and Tokens are then unset.
type Result struct {
	Frames []ResultFrame `json:"frames"`
	Tokens []string      `json:"tokens"`
	Error  string        `json:"error,omitempty"`
}

// Call sends one CoNLL-encoded sentence to Semafor and decodes the single
// JSON line it answers with. The request must be non-empty after trimming.
// Callers block until the round trip completes; if this is the first call,
// that includes process startup. Stream EOF and malformed response frames
// are fatal: the error wraps internalerr.ErrProtocol and the adapter is
// left broken. Restarting Semafor means restarting the program.
func (p *Parser) Call(conll string) (Result, error) {
	conll = strings.TrimSpace(conll)
	if conll == "" {
		return Result{}, fmt.Errorf("%w: empty request", internalerr.ErrInvalidInput)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureStarted(); err != nil {
		return Result{}, err
	}

	if _, err := io.WriteString(p.in, conll+"\n\n"); err != nil {
		return Result{}, fmt.Errorf("write request: %w", err)
	}
	if f, ok := p.in.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return Result{}, fmt.Errorf("flush request: %w", err)
		}
	}

	lines, err := p.readFrame()
	if err != nil {
		return Result{}, err
	}
	if len(lines) != 1 {
		return Result{}, fmt.Errorf("%w: expected 1 response line, got %d",
			internalerr.ErrProtocol, len(lines))
	}

	var res Result
	if err := json.Unmarshal([]byte(lines[0]), &res); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}

// ensureStarted launches the process and consumes its readiness banner.
// Caller must hold p.mu.
func (p *Parser) ensureStarted() error {
	if p.started {
		return nil
	}
	stdin, stdout, err := p.launcher.Start()
	if err != nil {
		return fmt.Errorf("start semafor: %w", err)
	}
	p.in = stdin
	p.out = bufio.NewReader(stdout)

	// Discard everything up to the first sentinel; that line is the
	// process's readiness banner.
	if _, err := p.readFrame(); err != nil {
		return fmt.Errorf("await readiness: %w", err)
	}
	p.started = true
	return nil
}

// readFrame reads output lines until the sentinel and returns the lines
// before it. EOF before the sentinel is a protocol violation.
func (p *Parser) readFrame() ([]string, error) {
	var lines []string
	for {
		line, err := p.out.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("%w: unexpected EOF", internalerr.ErrProtocol)
			}
			return nil, fmt.Errorf("read response: %w", err)
		}
		if strings.TrimSpace(line) == sentinel {
			return lines, nil
		}
		lines = append(lines, strings.TrimRight(line, "\n"))
	}
}
