package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/okian/openings/internal/domain/eco"
	"github.com/okian/openings/internal/domain/types"
)

const (
	headerWinRates = `QUESTION ONE: Which openings by their ECO codes are considered "good"? ` +
		`For white (who has first-move advantage), a win rate of at least 52% is considered high, and 45% for black.`
	headerDevelopment = `QUESTION TWO: Do more developed openings correlate to higher win percentages? ` +
		`Does this differ significantly between white and black? ` +
		`Whether or not an opening is "developed" is dependent on its number of moves.`
	headerPopularity = `QUESTION THREE: Is there a correlation between an opening's popularity ` +
		`(number of games played) and its success rate?`
	headerTopPlayers = `QUESTION FOUR: Are there specific groups of openings (same ECO code) most ` +
		`commonly used by higher-rated players (top 25%)? If so, what are they?`
)

// TextRenderer writes the human readable report, one block per question.
type TextRenderer struct{}

// Render implements Renderer.
func (TextRenderer) Render(w io.Writer, r types.Report) error {
	bw := bufio.NewWriter(w)
	t := &textWriter{w: bw}

	if r.WinRates != nil {
		t.section(headerWinRates)
		t.side("white", r.WinRates.White)
		t.side("black", r.WinRates.Black)
	}
	if r.Development != nil {
		t.section(headerDevelopment)
		t.correlation(*r.Development)
	}
	if r.Popularity != nil {
		t.section(headerPopularity)
		t.correlation(*r.Popularity)
	}
	if r.TopPlayers != nil {
		t.section(headerTopPlayers)
		t.line("For white, the opening variations that higher players tend to use more often are %s",
			list(types.Codes(r.TopPlayers.White)))
		t.line("For black, the opening variations that higher players tend to use more often are %s",
			list(types.Codes(r.TopPlayers.Black)))
	}

	if t.err != nil {
		return t.err
	}
	return bw.Flush()
}

// textWriter keeps the first write error so sections can be written without
// checking each line.
type textWriter struct {
	w        io.Writer
	sections int
	err      error
}

func (t *textWriter) line(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format+"\n", args...)
}

func (t *textWriter) section(header string) {
	if t.sections > 0 {
		t.line(" ")
	}
	t.sections++
	t.line("%s", header)
}

func (t *textWriter) side(color string, s types.SideOpenings) {
	t.line("For %s, the openings with sufficient win rates are: %s", color, list(s.Names))
	t.line("Number of 'good' %s openings: %d", color, s.Count)
	if len(s.Families) > 0 {
		t.line("ECO families of 'good' %s openings: %s", color, families(s.Families))
	}
}

func (t *textWriter) correlation(c types.CorrelationFinding) {
	t.line("White correlation: %s", number(c.White))
	t.line("Black Correlation: %s", number(c.Black))
	t.line("%s", c.Fisher.Verdict)
}

// list formats items as "[a, b, c]".
func list(items []string) string {
	return "[" + strings.Join(items, ", ") + "]"
}

// families formats a tally as "A=1, B=0, ..." in letter order.
func families(tally map[string]int) string {
	letters := eco.Families()
	parts := make([]string, 0, len(letters))
	for _, l := range letters {
		k := string(l)
		parts = append(parts, k+"="+strconv.Itoa(tally[k]))
	}
	return strings.Join(parts, ", ")
}

func number(n types.Number) string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}
