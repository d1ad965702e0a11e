package notation

import (
	"regexp"
	"strings"
)

var transitionRe = regexp.MustCompile(`^([^\s:]+)\s*-->\s*([^\s:]+)(?:\s*:\s*(.*))?$`)

func matchTransition(line string, lineNo int) (EdgeDecl, bool) {
	m := transitionRe.FindStringSubmatch(line)
	if m == nil {
		return EdgeDecl{}, false
	}
	return EdgeDecl{
		From:  m[1],
		To:    m[2],
		Label: strings.TrimSpace(m[3]),
		Arrow: "-->",
		Pos:   Pos{Line: lineNo},
	}, true
}
