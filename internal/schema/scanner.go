package schema

import (
	"bufio"
	"strings"
)

// Parse scans src for a package declaration and service blocks and returns
// the extracted model together with diagnostics for rpc-looking lines the
// subset grammar does not recognize (streaming qualifiers, non-empty bodies,
// malformed declarations). Parse fails with *ParseError when src contains no
// service block, or when a service block yields zero recognized RPCs.
//
// Service block boundaries are found by brace-depth tracking on a per-line
// basis; a block whose braces are not line-balanced (an opening brace with
// its closer on the same line, or one brace per line) has undefined results.
func Parse(src string) (*Model, []Diagnostic, error) {
	var (
		model   Model
		diags   []Diagnostic
		current *Service
		opened  int // line the current service block started on
		depth   int
	)

	sc := bufio.NewScanner(strings.NewReader(src))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if current == nil {
			if model.PackageName == "" {
				if name, ok := packageDecl(line); ok {
					model.PackageName = name
					continue
				}
			}
			if name, ok := serviceDecl(line); ok {
				current = &Service{Name: name}
				opened = lineNo
				depth = 1
			}
			continue
		}

		if strings.HasPrefix(line, "rpc") {
			rpc, reason := rpcDecl(line)
			if reason != "" {
				diags = append(diags, Diagnostic{Line: lineNo, Text: line, Reason: reason})
			} else {
				current.RPCs = append(current.RPCs, rpc)
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			if len(current.RPCs) == 0 {
				return nil, diags, &ParseError{Service: current.Name, Line: opened}
			}
			model.Services = append(model.Services, *current)
			current = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, diags, err
	}

	if len(model.Services) == 0 {
		return nil, diags, &ParseError{}
	}
	if model.PackageName == "" {
		model.PackageName = model.Services[0].Name
	}
	return &model, diags, nil
}

// packageDecl recognizes `package <identifier>;`.
func packageDecl(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "package")
	if !ok || rest == "" || !isSpace(rest[0]) {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimSpace(rest), ";")
	name = strings.TrimSpace(name)
	if !isIdent(name, true) {
		return "", false
	}
	return name, true
}

// serviceDecl recognizes `service <Identifier> {`. The opening brace must be
// on the same line.
func serviceDecl(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "service")
	if !ok || rest == "" || !isSpace(rest[0]) {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	name, brace, found := strings.Cut(rest, "{")
	if !found || strings.TrimSpace(brace) != "" {
		return "", false
	}
	name = strings.TrimSpace(name)
	if !isIdent(name, false) {
		return "", false
	}
	return name, true
}

// rpcDecl recognizes `rpc <Name>(<In>) returns (<Out>);` with an optional
// empty `{}` body in place of the semicolon. A non-empty reason describes
// why the line was not recognized.
func rpcDecl(line string) (RPC, string) {
	rest, ok := strings.CutPrefix(line, "rpc")
	if !ok || rest == "" || !isSpace(rest[0]) {
		return RPC{}, "malformed rpc declaration"
	}

	name, rest, found := strings.Cut(strings.TrimSpace(rest), "(")
	name = strings.TrimSpace(name)
	if !found || !isIdent(name, false) {
		return RPC{}, "malformed rpc declaration"
	}

	in, rest, found := strings.Cut(rest, ")")
	if !found {
		return RPC{}, "malformed rpc declaration"
	}
	if strings.HasPrefix(strings.TrimSpace(in), "stream ") {
		return RPC{}, "streaming rpcs are not supported"
	}
	in = strings.TrimSpace(in)
	if !isIdent(in, true) {
		return RPC{}, "malformed rpc declaration"
	}

	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "returns")
	if !ok {
		return RPC{}, "malformed rpc declaration"
	}
	rest = strings.TrimSpace(rest)
	rest, ok = strings.CutPrefix(rest, "(")
	if !ok {
		return RPC{}, "malformed rpc declaration"
	}
	out, rest, found := strings.Cut(rest, ")")
	if !found {
		return RPC{}, "malformed rpc declaration"
	}
	if strings.HasPrefix(strings.TrimSpace(out), "stream ") {
		return RPC{}, "streaming rpcs are not supported"
	}
	out = strings.TrimSpace(out)
	if !isIdent(out, true) {
		return RPC{}, "malformed rpc declaration"
	}

	switch strings.ReplaceAll(strings.TrimSpace(rest), " ", "") {
	case "", ";", "{}", "{};":
		return RPC{Name: name, InType: in, OutType: out}, ""
	default:
		return RPC{}, "rpc body must be empty"
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// isIdent reports whether s is a plain identifier; dotted allows qualified
// names such as my.api.v1 or google.protobuf.Empty.
func isIdent(s string, dotted bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case c == '.':
			if !dotted || i == 0 || i == len(s)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
