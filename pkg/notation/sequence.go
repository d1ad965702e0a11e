package notation

import (
	"regexp"
	"strings"
)

// SequenceArrows lists the message arrow tokens, longest first.
var SequenceArrows = []string{"-->>", "->>", "--x", "-x", "--)", "-)", "-->", "->"}

var (
	participantRe = regexp.MustCompile(`^(?:participant|actor)\s+(\S+)(?:\s+as\s+(.+))?$`)
	messageRe     = regexp.MustCompile(`^([^\s:]+?)\s*(` + arrowAlternation() + `)([+-]?)\s*([^\s:]+)\s*:\s*(.*)$`)
)

func arrowAlternation() string {
	quoted := make([]string, len(SequenceArrows))
	for i, a := range SequenceArrows {
		quoted[i] = regexp.QuoteMeta(a)
	}
	return strings.Join(quoted, "|")
}

func matchParticipant(line string, lineNo int) (Participant, bool) {
	m := participantRe.FindStringSubmatch(line)
	if m == nil {
		return Participant{}, false
	}
	return Participant{
		Name:  m[1],
		Alias: strings.Trim(strings.TrimSpace(m[2]), `"`),
		Pos:   Pos{Line: lineNo},
	}, true
}

func matchMessage(line string, lineNo int) (EdgeDecl, bool) {
	m := messageRe.FindStringSubmatch(line)
	if m == nil {
		return EdgeDecl{}, false
	}
	return EdgeDecl{
		From:   m[1],
		Arrow:  m[2],
		Dotted: strings.HasPrefix(m[2], "--"),
		To:     m[4],
		Label:  strings.TrimSpace(m[5]),
		Pos:    Pos{Line: lineNo},
	}, true
}
