// Package spoken converts model output into display-safe and TTS-friendly
// text. StripMarkup removes markdown and LaTeX while keeping the reading
// structure; ToSpokenForm additionally rewrites math notation into words for
// audio delivery.
package spoken

import (
	"regexp"
	"strings"
)

var greekSymbols = []struct {
	latex  string
	symbol string
	word   string
}{
	{`\pi`, "π", "pi"},
	{`\theta`, "θ", "theta"},
	{`\alpha`, "α", "alpha"},
	{`\beta`, "β", "beta"},
	{`\gamma`, "γ", "gamma"},
	{`\delta`, "δ", "delta"},
	{`\epsilon`, "ε", "epsilon"},
	{`\lambda`, "λ", "lambda"},
	{`\mu`, "μ", "mu"},
	{`\sigma`, "σ", "sigma"},
	{`\phi`, "φ", "phi"},
	{`\omega`, "ω", "omega"},
}

var (
	reDisplayMath = regexp.MustCompile(`\\\[([\s\S]*?)\\\]`)
	reInlineMath  = regexp.MustCompile(`\\\(([\s\S]*?)\\\)`)
	reFraction    = regexp.MustCompile(`\\frac\{([^}]+)\}\{([^}]+)\}`)
	reTextCmd     = regexp.MustCompile(`\\text(?:bf|it)?\{([^}]+)\}`)
	reBold        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	reItalic      = regexp.MustCompile(`\*(.*?)\*`)
	reUnderBold   = regexp.MustCompile(`__(.*?)__`)
	reUnderItalic = regexp.MustCompile(`_(.*?)_`)
	reCodeBlock   = regexp.MustCompile("```[\\s\\S]*?```")
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	reHeader      = regexp.MustCompile(`(?m)^#+\s*`)
	reStep        = regexp.MustCompile(`Step\s*(\d+):`)
	reNumberDot   = regexp.MustCompile(`(\d+\.\s)`)
	reBlankRuns   = regexp.MustCompile(`\n\s*\n\s*\n+`)
	reLeadSpace   = regexp.MustCompile(`(?m)^[ \t]+`)
	reStray       = regexp.MustCompile("[`#]")

	rePower      = regexp.MustCompile(`\b([a-zA-Z]\w*)\s*\^\s*(\d+)`)
	reSqrtFn     = regexp.MustCompile(`(?i)sqrt\s*\(\s*([^\)]+)\)`)
	reLatexBrace = regexp.MustCompile(`\\[a-zA-Z]+\{[^}]*\}`)
	reLatexCmd   = regexp.MustCompile(`\\[a-zA-Z]+`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// latexSpacing maps LaTeX spacing commands to plain spacing.
var latexSpacing = strings.NewReplacer(
	`\,`, " ", `\:`, " ", `\;`, " ", `\!`, "",
	`\quad`, " ", `\qquad`, " ",
	`\left`, "", `\right`, "",
	`\times`, "×",
)

// StripMarkup removes markdown and LaTeX formatting while preserving the
// answer's step structure. Safe for both display and as TTS input.
func StripMarkup(text string) string {
	t := text

	t = reDisplayMath.ReplaceAllString(t, "$1")
	t = reInlineMath.ReplaceAllString(t, "$1")
	t = latexSpacing.Replace(t)
	for _, g := range greekSymbols {
		t = strings.ReplaceAll(t, g.latex, g.symbol)
	}
	t = reFraction.ReplaceAllString(t, "($1)/($2)")
	t = reTextCmd.ReplaceAllString(t, "$1")

	t = reCodeBlock.ReplaceAllString(t, "")
	t = reBold.ReplaceAllString(t, "$1")
	t = reItalic.ReplaceAllString(t, "$1")
	t = reUnderBold.ReplaceAllString(t, "$1")
	t = reUnderItalic.ReplaceAllString(t, "$1")
	t = reInlineCode.ReplaceAllString(t, "$1")
	t = reLink.ReplaceAllString(t, "$1")
	t = reHeader.ReplaceAllString(t, "\n\n")

	t = reStep.ReplaceAllString(t, "\n\nStep $1:")
	t = strings.ReplaceAll(t, "• ", "\n• ")
	for _, marker := range []string{"Important:", "Answer:", "Formula:", "Final Answer:"} {
		t = strings.ReplaceAll(t, marker, "\n\n"+marker)
	}
	t = reNumberDot.ReplaceAllString(t, "\n\n$1")

	t = reBlankRuns.ReplaceAllString(t, "\n\n")
	t = reLeadSpace.ReplaceAllString(t, "")
	t = reStray.ReplaceAllString(t, "")

	return strings.TrimSpace(t)
}

// ToSpokenForm rewrites math notation into words for audio output:
// "A = π × r^2" becomes "A equals pi times r squared". Intended only for
// the TTS path; the display answer keeps symbols.
func ToSpokenForm(text string) string {
	if text == "" {
		return text
	}

	t := StripMarkup(text)

	t = reFraction.ReplaceAllString(t, "$1 divided by $2")
	t = reTextCmd.ReplaceAllString(t, "$1")
	t = reLatexBrace.ReplaceAllString(t, "")
	t = reLatexCmd.ReplaceAllString(t, "")

	t = strings.ReplaceAll(t, "²", "^2")
	t = strings.ReplaceAll(t, "³", "^3")
	for _, g := range greekSymbols {
		t = strings.ReplaceAll(t, g.symbol, g.word)
	}

	t = strings.ReplaceAll(t, "×", " times ")
	t = strings.ReplaceAll(t, "*", " times ")
	t = strings.ReplaceAll(t, "÷", " divided by ")
	t = strings.ReplaceAll(t, "/", " divided by ")
	t = strings.ReplaceAll(t, "=", " equals ")

	t = rePower.ReplaceAllStringFunc(t, func(m string) string {
		parts := rePower.FindStringSubmatch(m)
		base, exp := parts[1], parts[2]
		switch exp {
		case "2":
			return base + " squared"
		case "3":
			return base + " cubed"
		}
		return base + " to the power of " + exp
	})

	t = reSqrtFn.ReplaceAllString(t, "square root of $1")
	t = strings.ReplaceAll(t, "√", "square root of ")

	t = strings.ReplaceAll(t, "(", " ( ")
	t = strings.ReplaceAll(t, ")", " ) ")

	return strings.TrimSpace(reSpaces.ReplaceAllString(t, " "))
}
