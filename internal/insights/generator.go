// Package insights bridges to the external text-analysis script that turns
// journal text into a structured insight payload.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Generator produces an insight payload for a piece of journal text.
// referenceID is the id of the entry the text belongs to (or the anchor
// entry of a consolidated window).
type Generator interface {
	Generate(ctx context.Context, referenceID, text string) (*Payload, error)
}

// GenerationError reports a failed generator run together with whatever the
// process wrote to its error stream.
type GenerationError struct {
	Diagnostic string
	Err        error
}

func (e *GenerationError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("insight generation failed: %v: %s", e.Err, e.Diagnostic)
	}
	return fmt.Sprintf("insight generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ScriptGenerator shells out to the analysis script with (referenceID, text)
// as positional arguments and expects one JSON document on stdout. stdout and
// stderr are drained concurrently so neither pipe can fill up and deadlock
// the child.
type ScriptGenerator struct {
	interpreter string
	script      string
	timeout     time.Duration
	logger      *zap.Logger
}

// NewScriptGenerator builds a generator running `interpreter [script]
// referenceID text`. A zero timeout disables the deadline.
func NewScriptGenerator(interpreter, script string, timeout time.Duration, logger *zap.Logger) *ScriptGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptGenerator{interpreter: interpreter, script: script, timeout: timeout, logger: logger}
}

func (g *ScriptGenerator) Generate(ctx context.Context, referenceID, text string) (*Payload, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	args := make([]string, 0, 3)
	if g.script != "" {
		args = append(args, g.script)
	}
	args = append(args, referenceID, text)
	cmd := exec.CommandContext(ctx, g.interpreter, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &GenerationError{Err: err}
	}
	started := time.Now()
	if err := cmd.Start(); err != nil {
		// spawn failure (interpreter missing etc.) counts the same as a
		// nonzero exit
		return nil, &GenerationError{Err: err}
	}

	var (
		payload *Payload
		stdoutB bytes.Buffer
		diag    bytes.Buffer
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		buf := make([]byte, 32*1024)
		for {
			n, readErr := stdout.Read(buf)
			if n > 0 {
				chunk := buf[:n]
				stdoutB.Write(chunk)
				// A chunk may be a whole document on its own or the last
				// piece of one split across reads; keep the most recent
				// successful parse either way.
				if p := parsePayload(chunk); p != nil {
					payload = p
				} else if p := parsePayload(stdoutB.Bytes()); p != nil {
					payload = p
				}
			}
			if readErr != nil {
				return
			}
		}
	}()
	go func() {
		defer wg.Done()
		_, _ = io.Copy(&diag, stderr)
	}()
	wg.Wait()

	waitErr := cmd.Wait()
	g.logger.Debug("insight script finished",
		zap.String("reference_id", referenceID),
		zap.Duration("took", time.Since(started)),
		zap.Bool("parsed", payload != nil))

	if waitErr != nil {
		return nil, &GenerationError{Diagnostic: strings.TrimSpace(diag.String()), Err: waitErr}
	}
	if payload == nil {
		return nil, &GenerationError{
			Diagnostic: strings.TrimSpace(diag.String()),
			Err:        errors.New("no parseable JSON on stdout"),
		}
	}
	return payload, nil
}

func parsePayload(b []byte) *Payload {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}
	var p Payload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil
	}
	p.Raw = append(json.RawMessage(nil), trimmed...)
	return &p
}
