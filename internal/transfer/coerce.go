package transfer

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/pkg/utils"
	"github.com/spf13/cast"
)

const (
	DayLayout       = "2006-01-02"
	LocalTimeLayout = "2006-01-02 15:04:05"
)

var dayPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// text coerces scalars to a trimmed string. Lists of scalars are joined
// with spaces, which is how hashtags sometimes arrive.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(t))
		for _, el := range t {
			if s := text(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func (r record) str(aliases ...string) string {
	v, _ := r.value(aliases...)
	return text(v)
}

// ref reads an identifier that may arrive either as a scalar or as a
// nested object such as {"cliente": {"id": 7, "nome": "Padaria"}}.
func (r record) ref(aliases ...string) (id, name string) {
	v, ok := r.value(aliases...)
	if !ok {
		return "", ""
	}
	if m, isObj := v.(map[string]any); isObj {
		nested := newRecord(m)
		return nested.str(nestedIDAliases...), nested.str(nestedNameAliases...)
	}
	return text(v), ""
}

func (r record) boolean(aliases ...string) bool {
	v, ok := r.value(aliases...)
	if !ok {
		return false
	}
	if s, isStr := v.(string); isStr {
		switch utils.FoldKey(s) {
		case "sim", "yes", "s", "y":
			return true
		}
	}
	b, err := cast.ToBoolE(v)
	return err == nil && b
}

// rating returns a score in 1..10, or nil when absent or out of range.
func (r record) rating(aliases ...string) *int {
	v, ok := r.value(aliases...)
	if !ok {
		return nil
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		if s, isStr := v.(string); isStr {
			f, err = strconv.ParseFloat(strings.Replace(strings.TrimSpace(s), ",", ".", 1), 64)
		}
		if err != nil {
			return nil
		}
	}
	n := int(math.Round(f))
	if n < 1 || n > 10 {
		return nil
	}
	return &n
}

// toTime accepts time values, date strings of any common layout and unix
// timestamps in seconds or milliseconds.
func toTime(v any, loc *time.Location) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t.In(loc), !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return t.In(loc), true
	case string:
		s := strings.TrimSpace(t)
		if utils.IsAbsentPath(s) {
			return time.Time{}, false
		}
		parsed, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.In(loc), true
	}

	n, err := cast.ToInt64E(v)
	if err != nil || n <= 0 {
		return time.Time{}, false
	}
	if n > 1e11 {
		return time.UnixMilli(n).In(loc), true
	}
	return time.Unix(n, 0).In(loc), true
}

// day normalises to YYYY-MM-DD. A string that already starts with a
// calendar date keeps that date verbatim, so no timezone shift can move it.
func day(v any, loc *time.Location) string {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if dayPrefix.MatchString(s) {
			return s[:len(DayLayout)]
		}
	}
	t, ok := toTime(v, loc)
	if !ok {
		return ""
	}
	return t.Format(DayLayout)
}

// instant normalises to RFC 3339 in loc, for fields that need the hour.
func instant(v any, loc *time.Location) string {
	t, ok := toTime(v, loc)
	if !ok {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (r record) day(loc *time.Location, aliases ...string) string {
	v, _ := r.value(aliases...)
	return day(v, loc)
}

func (r record) instant(loc *time.Location, aliases ...string) string {
	v, _ := r.value(aliases...)
	return instant(v, loc)
}

func isPath(v any) bool {
	s, ok := v.(string)
	return ok && !utils.IsAbsentPath(s)
}

func (r record) path(aliases ...string) string {
	v, ok := r.lookup(aliases, isPath)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.(string))
}

// paths reads a list of media paths. The list may be JSON encoded inside a
// string, and its elements may be plain strings or {path|url} objects.
func paths(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if utils.IsAbsentPath(t) {
			break
		}
		if decoded, ok := decodeJSONText(t); ok {
			return paths(decoded)
		}
		if utils.IsAbsentPath(t) {
			return nil
		}
		return []string{strings.TrimSpace(t)}
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, el := range t {
			switch e := el.(type) {
			case string:
				out = append(out, e)
			case map[string]any:
				out = append(out, newRecord(e).path(mediaPathObjectAliases...))
			}
		}
		return out
	}
	return nil
}

func (r record) mediaPaths() []string {
	primary := r.path(mediaPrimaryAliases...)

	slots := make([]string, 0, models.MaxMediaPaths)
	for n := 1; n <= models.MaxMediaPaths; n++ {
		slots = append(slots, r.path(mediaSlotAliases(n)...))
	}

	list, _ := r.value(mediaListAliases...)
	return models.MergeMediaPaths([]string{primary}, slots, paths(list))
}

// comments accepts a structured list, a single plain string (attributed to
// the client) or a JSON-encoded string that falls back to plain text when
// it does not parse.
func comments(v any, loc *time.Location) []models.Comment {
	out := make([]models.Comment, 0)
	switch t := v.(type) {
	case nil:
	case string:
		if utils.IsAbsentPath(t) {
			break
		}
		if decoded, ok := decodeJSONText(t); ok {
			return comments(decoded, loc)
		}
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, models.Comment{Author: models.ClientCommentAuthor, Text: s})
		}
	case []any:
		for _, el := range t {
			out = append(out, comments(el, loc)...)
		}
	case map[string]any:
		if c, ok := comment(newRecord(t), loc); ok {
			out = append(out, c)
		}
	default:
		if s := text(v); s != "" {
			out = append(out, models.Comment{Author: models.ClientCommentAuthor, Text: s})
		}
	}
	return out
}

func comment(r record, loc *time.Location) (models.Comment, bool) {
	body := r.str(commentTextAliases...)
	if body == "" {
		return models.Comment{}, false
	}
	author := r.str(commentAuthorAliases...)
	if author == "" {
		author = models.ClientCommentAuthor
	}
	ts := ""
	if v, ok := r.value(commentTimeAliases...); ok {
		ts = instant(v, loc)
		if ts == "" {
			ts = text(v)
		}
	}
	return models.Comment{Author: author, Text: body, Timestamp: ts}, true
}

// slideComments accepts either a list of {slide, autor, texto} objects
// (optionally with a nested comment list per slide) or an object keyed by
// slide number.
func slideComments(v any, loc *time.Location) []models.SlideComment {
	out := make([]models.SlideComment, 0)
	switch t := v.(type) {
	case string:
		if utils.IsAbsentPath(t) {
			break
		}
		if decoded, ok := decodeJSONText(t); ok {
			return slideComments(decoded, loc)
		}
	case []any:
		for i, el := range t {
			m, ok := el.(map[string]any)
			if !ok {
				continue
			}
			r := newRecord(m)
			slide := i + 1
			if idx, ok := r.value(slideIndexAliases...); ok {
				if n, err := cast.ToIntE(idx); err == nil && n > 0 {
					slide = n
				}
			}
			if nested, ok := r.value(commentsAliases...); ok {
				for _, c := range comments(nested, loc) {
					out = append(out, models.SlideComment{Slide: slide, Comment: c})
				}
				continue
			}
			if c, ok := comment(r, loc); ok {
				out = append(out, models.SlideComment{Slide: slide, Comment: c})
			}
		}
	case map[string]any:
		type entry struct {
			slide int
			value any
		}
		entries := make([]entry, 0, len(t))
		for k, val := range t {
			n, err := strconv.Atoi(strings.TrimSpace(k))
			if err != nil || n <= 0 {
				continue
			}
			entries = append(entries, entry{n, val})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].slide < entries[j].slide })
		for _, e := range entries {
			for _, c := range comments(e.value, loc) {
				out = append(out, models.SlideComment{Slide: e.slide, Comment: c})
			}
		}
	}
	return out
}

func formatLocal(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(LocalTimeLayout)
}

// localStamp renders a stored date or instant as "YYYY-MM-DD HH:mm:ss".
// Day-only values map to local midnight.
func localStamp(v string, loc *time.Location) any {
	if v == "" {
		return nil
	}
	if len(v) == len(DayLayout) {
		if d, err := time.ParseInLocation(DayLayout, v, loc); err == nil {
			return formatLocal(d, loc)
		}
	}
	t, ok := toTime(v, loc)
	if !ok {
		return nil
	}
	return formatLocal(t, loc)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
