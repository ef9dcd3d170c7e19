package telegram

import (
	"fmt"
	"strings"

	"github.com/cinescout/cinescout/internal/core"
	"github.com/cinescout/cinescout/internal/search"
)

// mdV2Replacer escapes special characters for Telegram MarkdownV2.
var mdV2Replacer = strings.NewReplacer(
	`\`, `\\`,
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
)

// EscapeMdV2 escapes a string for safe use in Telegram MarkdownV2.
func EscapeMdV2(s string) string {
	return mdV2Replacer.Replace(s)
}

// FormatBold returns MarkdownV2 bold text.
func FormatBold(s string) string {
	return "*" + EscapeMdV2(s) + "*"
}

// FormatMovie renders one result card as MarkdownV2.
func FormatMovie(s *search.Session, m core.Movie) string {
	var sb strings.Builder
	sb.WriteString(FormatBold(m.DisplayTitle()))
	sb.WriteString(" ")
	sb.WriteString(EscapeMdV2(fmt.Sprintf("(%s)", search.Year(m))))
	sb.WriteString("\n")
	sb.WriteString(EscapeMdV2("Rating: " + search.Rating(m)))
	sb.WriteString("\n")
	sb.WriteString(EscapeMdV2("Genres: " + s.GenreNames(m.GenreIDs)))
	return sb.String()
}

// FormatResults renders a full result page with a pagination footer.
func FormatResults(s *search.Session, results []core.Movie, page, totalPages int) string {
	cards := make([]string, 0, len(results)+1)
	for _, m := range results {
		cards = append(cards, FormatMovie(s, m))
	}
	cards = append(cards, EscapeMdV2(fmt.Sprintf("Page %d of %d", page, totalPages)))
	return strings.Join(cards, "\n\n")
}

// FormatGenres renders the genre list, one per line.
func FormatGenres(genres []core.Genre) string {
	if len(genres) == 0 {
		return EscapeMdV2("Genre list is unavailable right now.")
	}
	var sb strings.Builder
	sb.WriteString(FormatBold("Genres"))
	for _, g := range genres {
		sb.WriteString("\n")
		sb.WriteString(EscapeMdV2(fmt.Sprintf("%d: %s", g.ID, g.Name)))
	}
	return sb.String()
}
