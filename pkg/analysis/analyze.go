package analysis

import (
	"regexp"
	"strings"

	"github.com/matzehuels/cobolgraph/pkg/config"
	"github.com/matzehuels/cobolgraph/pkg/errors"
	"github.com/matzehuels/cobolgraph/pkg/structure"
)

// Analyze scans every paragraph of t, derives entry points and stats, and
// inventories the storage-section variables.
// It fails only on an invalid configuration.
func Analyze(t *structure.Table, cfg config.Analysis) (*Result, error) {
	trace, err := config.CompilePattern(cfg.TracePattern)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "trace_pattern")
	}

	a := &analyzer{
		table:    t,
		trace:    trace,
		suffixes: cfg.TargetSuffixes,
		res: &Result{
			Table: t,
			Stats: Stats{Paragraphs: t.Len(), Exits: make(map[ExitKind]int)},
		},
	}
	for i := range t.Paragraphs {
		p := &t.Paragraphs[i]
		a.scan(p.Name, tokenize(p.Body()))
	}
	a.deriveEntryPoints()

	a.res.Variables = inventory(t)
	a.res.Stats.Variables = len(a.res.Variables)
	a.res.Stats.UnusedVariables = len(a.res.UnusedVariables())
	return a.res, nil
}

type analyzer struct {
	table    *structure.Table
	trace    *regexp.Regexp
	suffixes []string
	res      *Result
}

// scan walks one paragraph's tokens statement by statement.
func (a *analyzer) scan(para string, toks []token) {
	for i := 0; i < len(toks); {
		t := toks[i]
		switch {
		case t.is("EXEC"):
			i = a.exec(para, toks, i)
		case t.is("GO"):
			i = a.goTo(para, toks, i)
		case t.is("PERFORM"):
			i = a.perform(para, toks, i)
		case t.is("STOP") && i+1 < len(toks) && toks[i+1].is("RUN"):
			a.exit(para, ProgramEnd, "STOP RUN", "", t)
			i += 2
		case t.is("GOBACK"):
			a.exit(para, ProgramEnd, "GOBACK", "", t)
			i++
		default:
			i++
		}
	}
}

// goTo handles GO [TO] a [b ...] [DEPENDING ON x].
func (a *analyzer) goTo(para string, toks []token, i int) int {
	start := toks[i]
	k := i + 1
	if !start.period && k < len(toks) && toks[k].is("TO") {
		k++
	}
	first := k
	var targets []token
	for k < len(toks) && toks[k].isName() && !toks[k-1].period {
		targets = append(targets, toks[k])
		k++
	}
	if len(targets) == 0 {
		return k
	}
	// Several targets are only a list when DEPENDING ON follows.
	depending := k < len(toks) && !toks[k-1].period && toks[k].is("DEPENDING")
	if len(targets) > 1 && !depending {
		targets, k = targets[:1], first+1
	}
	for _, target := range targets {
		name, ok := a.resolve(target.text)
		a.edge(CallEdge{Source: para, Kind: Jump, Target: name, Resolved: ok}, start)
	}
	return k
}

// perform handles out-of-line PERFORM a [THRU b]. Inline forms are skipped
// over; their body statements are scanned like any other.
func (a *analyzer) perform(para string, toks []token, i int) int {
	start := toks[i]
	k := i + 1
	if start.period || k >= len(toks) {
		return k
	}
	first := toks[k]
	if a.inline(toks, k) {
		return k
	}

	var through *token
	if !first.period && k+2 < len(toks) && (toks[k+1].is("THRU") || toks[k+1].is("THROUGH")) && toks[k+2].isName() && !toks[k+1].period {
		through = &toks[k+2]
	}

	if a.isTrace(first.text) || (through != nil && a.isTrace(through.text)) {
		a.res.Stats.SuppressedPerforms++
		if through != nil {
			return k + 3
		}
		return k + 1
	}

	name, ok := a.resolve(first.text)
	if through == nil {
		a.edge(CallEdge{Source: para, Kind: Perform, Target: name, Resolved: ok}, start)
		return k + 1
	}
	end, endOK := a.resolve(through.text)
	a.edge(CallEdge{
		Source:          para,
		Kind:            PerformRange,
		Target:          name,
		Resolved:        ok,
		Through:         end,
		ThroughResolved: endOK,
	}, start)
	return k + 3
}

// inline reports whether the PERFORM whose first operand is toks[k] is an
// inline perform.
func (a *analyzer) inline(toks []token, k int) bool {
	t := toks[k]
	if t.literal {
		return true
	}
	if _, ok := inlineStarts[t.upper]; ok {
		return true
	}
	if !t.isName() {
		return true
	}
	// PERFORM n TIMES ... END-PERFORM
	return !t.period && k+1 < len(toks) && toks[k+1].is("TIMES")
}

// exec handles an EXEC ... END-EXEC block and returns the index after it.
// A block missing its END-EXEC ends with the sentence.
func (a *analyzer) exec(para string, toks []token, i int) int {
	if toks[i].period {
		return i + 1
	}
	end, next := i+1, len(toks)
	for ; end < len(toks); end++ {
		if toks[end].is("END-EXEC") {
			next = end + 1
			break
		}
		if toks[end].period {
			end++
			next = end
			break
		}
	}
	if i+2 >= end || !toks[i+1].is("CICS") {
		return next
	}

	start := toks[i]
	cmd := toks[i+2].upper
	opts := parseOptions(toks[i+3 : end])
	switch cmd {
	case "XCTL":
		a.exit(para, ExternalTransfer, "XCTL", opts.value("PROGRAM"), start)
	case "RETURN":
		a.exit(para, Return, "RETURN", opts.value("TRANSID"), start)
	case "ABEND":
		a.exit(para, ForcedStop, "ABEND", opts.value("ABCODE"), start)
	case "SEND":
		if opts.has("MAP") {
			a.interaction(Interaction{Paragraph: para, Kind: SendMap, Map: opts.value("MAP"), Mapset: opts.value("MAPSET"), Seq: start.rec.Seq})
		}
	case "RECEIVE":
		if opts.has("MAP") {
			a.interaction(Interaction{Paragraph: para, Kind: ReceiveMap, Map: opts.value("MAP"), Mapset: opts.value("MAPSET"), Seq: start.rec.Seq})
		}
	case "START":
		if opts.has("TRANSID") {
			a.interaction(Interaction{Paragraph: para, Kind: StartTransaction, Target: opts.value("TRANSID"), Seq: start.rec.Seq})
		}
	case "LINK":
		if opts.has("PROGRAM") {
			a.interaction(Interaction{Paragraph: para, Kind: LinkProgram, Target: opts.value("PROGRAM"), Seq: start.rec.Seq})
		}
	}
	return next
}

func (a *analyzer) edge(e CallEdge, at token) {
	e.Seq, e.SourceLine = at.rec.Seq, at.rec.SourceLine
	a.res.Edges = append(a.res.Edges, e)
	switch e.Kind {
	case Jump:
		a.res.Stats.Jumps++
	case Perform:
		a.res.Stats.Performs++
	case PerformRange:
		a.res.Stats.PerformRanges++
	}
	if !e.IsResolved() {
		a.res.Stats.Unresolved++
	}
}

func (a *analyzer) exit(para string, kind ExitKind, form, ident string, at token) {
	a.res.Exits = append(a.res.Exits, ExitRecord{
		Paragraph:  para,
		Kind:       kind,
		Form:       form,
		Identifier: ident,
		Seq:        at.rec.Seq,
		SourceLine: at.rec.SourceLine,
	})
	a.res.Stats.Exits[kind]++
}

func (a *analyzer) interaction(in Interaction) {
	a.res.Interactions = append(a.res.Interactions, in)
	a.res.Stats.Interactions++
}

// resolve maps a written target to a paragraph name. A name ending in one of
// the configured suffixes falls back to its base name.
func (a *analyzer) resolve(name string) (string, bool) {
	if p, ok := a.table.Lookup(name); ok {
		return p.Name, true
	}
	key := structure.Key(name)
	for _, suffix := range a.suffixes {
		suffix = strings.ToUpper(suffix)
		if suffix == "" || !strings.HasSuffix(key, suffix) {
			continue
		}
		if p, ok := a.table.Lookup(strings.TrimSuffix(key, suffix)); ok {
			return p.Name, true
		}
	}
	return key, false
}

func (a *analyzer) isTrace(name string) bool {
	return a.trace != nil && a.trace.MatchString(name)
}

func (a *analyzer) deriveEntryPoints() {
	inbound := make(map[string]struct{})
	for _, e := range a.res.Edges {
		if e.Resolved {
			inbound[e.Target] = struct{}{}
		}
		if e.Kind == PerformRange && e.ThroughResolved {
			inbound[e.Through] = struct{}{}
		}
	}

	a.res.entries = make(map[string]struct{})
	for i, p := range a.table.Paragraphs {
		if _, called := inbound[p.Name]; i > 0 && called {
			continue
		}
		a.res.EntryPoints = append(a.res.EntryPoints, p.Name)
		a.res.entries[p.Name] = struct{}{}
	}
}

// options holds the NAME(value) and bare NAME options of a CICS command.
type options map[string]string

func parseOptions(toks []token) options {
	opts := make(options)
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.literal || t.upper == "(" || t.upper == ")" {
			continue
		}
		if i+1 < len(toks) && toks[i+1].upper == "(" {
			var parts []string
			j := i + 2
			for j < len(toks) && toks[j].upper != ")" {
				if toks[j].literal {
					parts = append(parts, toks[j].text)
				} else {
					parts = append(parts, toks[j].upper)
				}
				j++
			}
			opts[t.upper] = strings.Join(parts, " ")
			i = j
			continue
		}
		if _, seen := opts[t.upper]; !seen {
			opts[t.upper] = ""
		}
	}
	return opts
}

func (o options) has(name string) bool {
	_, ok := o[name]
	return ok
}

func (o options) value(name string) string {
	return o[name]
}
