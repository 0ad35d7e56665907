package models

import (
	"strings"

	"github.com/maheshrc27/approvals-api/pkg/utils"
)

const MaxMediaPaths = 10

type Publication struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"cliente_id"`
	IdeaID        string            `json:"ideia_id"`
	Title         string            `json:"titulo"`
	Platform      Platform          `json:"plataforma"`
	Format        Format            `json:"formato"`
	Caption       string            `json:"legenda"`
	MediaPaths    []string          `json:"midia_urls"`
	CoverPath     string            `json:"cover_url"`
	Status        PublicationStatus `json:"status"`
	ScheduledAt   string            `json:"data_agendada"` // RFC 3339
	PostedAt      string            `json:"data_postagem"` // RFC 3339
	PublishedLink string            `json:"link_publicado"`
	Comments      []Comment         `json:"comentarios"`
	Rating        *int              `json:"nota"`
	CreatedAt     string            `json:"created_at"`
}

// MergeMediaPaths drops absent values, keeps the first occurrence of each
// path and caps the result at MaxMediaPaths. The result is never nil.
func MergeMediaPaths(sources ...[]string) []string {
	out := make([]string, 0, MaxMediaPaths)
	seen := make(map[string]struct{}, MaxMediaPaths)
	for _, src := range sources {
		for _, p := range src {
			if len(out) == MaxMediaPaths {
				return out
			}
			if utils.IsAbsentPath(p) {
				continue
			}
			p = strings.TrimSpace(p)
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// SetMedia replaces the media list and re-resolves the cover so it is
// always a member of the list, or empty when the list is.
func (p Publication) SetMedia(paths []string, cover string) Publication {
	p.MediaPaths = MergeMediaPaths(paths)
	p.CoverPath = ResolveCover(p.MediaPaths, cover)
	return p
}

func ResolveCover(paths []string, cover string) string {
	cover = strings.TrimSpace(cover)
	for _, p := range paths {
		if p == cover {
			return cover
		}
	}
	if len(paths) > 0 {
		return paths[0]
	}
	return ""
}

func (p Publication) HasMedia(path string) bool {
	for _, m := range p.MediaPaths {
		if m == path {
			return true
		}
	}
	return false
}

func (p Publication) WithContent(from Publication) Publication {
	p.Title = from.Title
	p.Platform = from.Platform
	p.Format = from.Format
	p.Caption = from.Caption
	return p
}

func (p Publication) AppendComment(c Comment) Publication {
	comments := make([]Comment, 0, len(p.Comments)+1)
	comments = append(comments, p.Comments...)
	p.Comments = append(comments, c)
	return p
}
