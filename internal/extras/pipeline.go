package extras

// pipeline carries the state of one Process invocation. Nothing here is
// shared between invocations; every conversion starts from empty state.
type pipeline struct {
	opts     Options
	stash    stash
	tables   map[string]*Table
	headings []Heading
	diagrams []Diagram
	errors   []error
	tocSlots []tocSlot
}

// Process runs the full rewriting pipeline over one source document:
// stash protected regions, harvest named tables, dispatch the enabled
// extras in priority order, resolve deferred TOC markers, and restore the
// stashed regions verbatim.
func Process(source string, opts Options) *Result {
	if opts.TOCDepth < 0 {
		opts.TOCDepth = 0
	}
	p := &pipeline{opts: opts}

	text := p.stash.Protect(source)

	// Diagram fences are already stashed; the extra rewrites the stash
	// entries in place so its output stays immune to later passes.
	if opts.Enabled.Has(KindDiagram) {
		p.extractDiagrams()
	}

	var warnings []error
	text, p.tables, warnings = registerTables(text)
	p.errors = append(p.errors, warnings...)

	if opts.Enabled.Has(KindQuery) {
		text = p.applyQueries(text)
	}
	if opts.Enabled.Has(KindMath) {
		text = convertMath(text)
	}
	if opts.Enabled.Has(KindAdmonition) {
		text = convertAdmonitions(text)
	}
	if opts.Enabled.Has(KindSpan) {
		text = convertSpans(text)
	}
	if opts.Enabled.Has(KindImage) {
		text = convertImages(text)
	}
	if opts.Enabled.Has(KindTOC) {
		text = p.markTOC(text)
	}
	if opts.Enabled.Has(KindPageBreak) {
		text = collapsePageBreaks(text)
	}

	// Headings are collected after every content-generating pass ran, so
	// markers placed before later headings still see the whole document.
	// Anchor attributes are only written into the text when the TOC extra
	// is on; with it off the heading lines pass through untouched.
	text = p.collectHeadings(text, opts.Enabled.Has(KindTOC))

	if opts.Enabled.Has(KindTOC) {
		text = p.resolveTOC(text)
	}

	text = p.stash.Restore(text)

	return &Result{
		Markup:   text,
		Headings: p.headings,
		Diagrams: p.diagrams,
		Errors:   p.errors,
	}
}
