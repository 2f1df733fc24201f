package post_http

import (
	"embed"
	"html/template"
	"time"

	model "kaizen-board/internal/domain/models"
)

const (
	boardTemplate    = "board.html"
	unknownDateLabel = "date unknown"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates returns the page templates for gin's HTML renderer.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))
}

type BoardView struct {
	Heading string
	Posts   []PostCard
}

type PostCard struct {
	ID        int64
	Title     string
	Likes     int32
	Done      bool
	DateLabel string
}

func NewBoardView(posts []*model.Post, order model.ListOrder, dateLayout string) BoardView {
	heading := "Everyone's voice (most liked first)"
	if order == model.OrderByCreatedAt {
		heading = "Everyone's voice (newest first)"
	}

	cards := make([]PostCard, 0, len(posts))
	for _, p := range posts {
		if p == nil {
			continue
		}
		cards = append(cards, PostCard{
			ID:        p.ID,
			Title:     p.Title,
			Likes:     p.Likes,
			Done:      p.Status.IsDone(),
			DateLabel: dateLabel(p, dateLayout),
		})
	}

	return BoardView{Heading: heading, Posts: cards}
}

func dateLabel(p *model.Post, layout string) string {
	if !p.CreatedAt.Valid || p.CreatedAt.Time.IsZero() {
		return unknownDateLabel
	}
	if layout == "" {
		layout = time.DateOnly
	}
	return p.CreatedAt.Time.Local().Format(layout)
}
