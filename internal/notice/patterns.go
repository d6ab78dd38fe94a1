package notice

import "regexp"

// The notice form mixes simplified and traditional glyphs: lot labels are
// printed with simplified 标别 while the content labels use traditional
// script. Every pattern accepts both forms and tolerates whitespace
// between glyphs, because the PDF text layer frequently splits label text
// into spaced single-glyph runs.
var (
	// lotLineRE matches a lot designation label and captures the rest of
	// the line, which carries the lot name.
	lotLineRE = regexp.MustCompile(`[标標]\s*[别別]\s*[:：](.*)`)

	// lotLineStartRE matches a lot label at the head of a text line.
	lotLineStartRE = regexp.MustCompile(`^\s*[标標]\s*[别別]\s*[:：]`)

	// usageLabelRE matches the usage condition label.
	usageLabelRE = regexp.MustCompile(`使\s*用\s*情\s*形`)

	// remarksLabelRE matches the remarks label.
	remarksLabelRE = regexp.MustCompile(`[备備]\s*[注註]`)

	// remarksLineStartRE matches a remarks label at the head of a text
	// line.
	remarksLineStartRE = regexp.MustCompile(`^\s*[备備]\s*[注註]`)

	// quotedLabelRE extracts a quote-wrapped lot name.
	quotedLabelRE = regexp.MustCompile(`["「『]([^"」』]+)["」』]`)

	// docketRE matches a case docket such as 112年司执字第12345号,
	// allowing a short court token between 执 and 字.
	docketRE = regexp.MustCompile(`\d+\s*年\s*司\s*[执執]\s*(?:[^\s字]\s*){0,6}字\s*(?:第\s*)?\d+\s*[号號]`)

	// runningHeaderRE matches the continuation header printed at the top
	// of every page after the first, e.g. 第二頁(續上頁).
	runningHeaderRE = regexp.MustCompile(`第\s*[一二三四五六七八九十百零]+\s*[页頁]\s*[（(]\s*[续續]\s*上\s*[页頁]\s*[）)]`)

	// pageNumberLineRE matches a line holding nothing but a page number.
	pageNumberLineRE = regexp.MustCompile(`^\s*\d+\s*$`)

	// A cropped region occasionally still opens with a remnant of its own
	// label. A first line holding nothing but the label is dropped whole;
	// a label directly followed by a colon is stripped from the line. A
	// body line that merely begins with the label glyphs, such as remarks
	// text starting with 備註事項, is left alone.
	usageLineOnlyRE      = regexp.MustCompile(`^\s*使\s*用\s*情\s*形\s*[:：]?\s*$`)
	usageColonPrefixRE   = regexp.MustCompile(`^\s*使\s*用\s*情\s*形\s*[:：]\s*`)
	remarksLineOnlyRE    = regexp.MustCompile(`^\s*[备備]\s*[注註]\s*[:：]?\s*$`)
	remarksColonPrefixRE = regexp.MustCompile(`^\s*[备備]\s*[注註]\s*[:：]\s*`)
)

// footerREs are the boilerplate markers that open the form footer below
// the remarks section: the execution division letterhead, the form code,
// the category marker, the approval line and the officer titles. Remarks
// text is cut at the earliest occurrence of any of them.
var footerREs = []*regexp.Regexp{
	regexp.MustCompile(`(?:[臺台]\s*灣\s*(?:\S\s*){0,6}地\s*方\s*法\s*院\s*)?民\s*事\s*執\s*行\s*處`),
	regexp.MustCompile(`[（(]\s*格\s*式\s*[一二三四五六七八九十\d]+\s*[）)]`),
	regexp.MustCompile(`[类類]\s*[别別]\s*[:：]`),
	regexp.MustCompile(`核\s*定`),
	regexp.MustCompile(`司\s*法\s*事\s*務\s*官|[书書]\s*[记記]\s*官`),
}
