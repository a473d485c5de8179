package assistant

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/counselops/brief/internal/core/casefile"
)

// Edit is a scripted summary rewrite, located by literal text at reply time.
type Edit struct {
	Find    string `yaml:"find"`
	Replace string `yaml:"replace"`
}

// Exchange pairs a message trigger with a canned reply and optional edits.
// Match is a case-insensitive substring of the user message.
type Exchange struct {
	Match string `yaml:"match"`
	Reply string `yaml:"reply"`
	Edits []Edit `yaml:"edits"`
}

// Script is the YAML document a scripted client replays.
type Script struct {
	Exchanges   []Exchange            `yaml:"exchanges"`
	Summary     string                `yaml:"summary"`
	Suggestions []casefile.Suggestion `yaml:"suggestions"`
}

// Scripted replays canned exchanges. Replies are deterministic so tests and
// demos behave identically run to run.
type Scripted struct {
	script Script
}

// NewScripted returns a scripted client with no exchanges. Every chat turn
// gets a generic acknowledgement and no edits.
func NewScripted() *Scripted {
	return &Scripted{}
}

// LoadScript reads a YAML exchange file.
func LoadScript(path string) (*Scripted, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	return &Scripted{script: script}, nil
}

// Chat returns the first exchange whose trigger matches the message. Edits
// are resolved against the summary supplied with the request; a find string
// that no longer occurs resolves to no edit.
func (s *Scripted) Chat(ctx context.Context, req casefile.ChatRequest) (casefile.ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return casefile.ChatReply{}, err
	}

	lower := strings.ToLower(req.Message)
	for _, ex := range s.script.Exchanges {
		if ex.Match == "" || !strings.Contains(lower, strings.ToLower(ex.Match)) {
			continue
		}

		reply := casefile.ChatReply{Text: ex.Reply}
		for _, e := range ex.Edits {
			if instr, ok := locateEdit(req.Summary, e); ok {
				reply.Edits = append(reply.Edits, instr)
			}
		}
		return reply, nil
	}

	return casefile.ChatReply{Text: "Noted. Nothing in the summary needs to change for that."}, nil
}

// Summarize returns the scripted summary, or a markdown digest built from
// the document titles when the script has none.
func (s *Scripted) Summarize(ctx context.Context, docs []casefile.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.script.Summary != "" {
		return s.script.Summary, nil
	}

	var b strings.Builder
	b.WriteString("# Case Summary\n")
	for _, d := range docs {
		b.WriteString("\n## ")
		b.WriteString(d.Title)
		b.WriteString("\n\n")
		b.WriteString(firstLine(d.Content))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Suggest returns the scripted suggestions filtered to those whose find
// text still occurs in the summary.
func (s *Scripted) Suggest(ctx context.Context, summary string) ([]casefile.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []casefile.Suggestion
	for _, sg := range s.script.Suggestions {
		if strings.Contains(summary, sg.Find) {
			out = append(out, sg)
		}
	}
	return out, nil
}

// locateEdit turns a find/replace pair into offset form against the summary.
// Offsets are rune indices.
func locateEdit(summary string, e Edit) (casefile.EditInstruction, bool) {
	idx := strings.Index(summary, e.Find)
	if e.Find == "" || idx < 0 {
		return casefile.EditInstruction{}, false
	}
	return casefile.EditInstruction{
		Start:        utf8.RuneCountInString(summary[:idx]),
		DeleteLength: utf8.RuneCountInString(e.Find),
		InsertText:   e.Replace,
	}, true
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
