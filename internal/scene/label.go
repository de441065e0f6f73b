package scene

import "sort"

// Role says how a label behaves when clicked.
type Role string

const (
	RoleLink      Role = "link"
	RoleInterface Role = "interface"
)

// Label is text that can be attached to a node. Lower Priority values win.
type Label interface {
	Text() string
	Priority() int
	Role() Role
}

// LinkLabel opens URL in a new browsing context.
type LinkLabel struct {
	Title string
	Rank  int
	URL   string
}

func (l *LinkLabel) Text() string  { return l.Title }
func (l *LinkLabel) Priority() int { return l.Rank }
func (l *LinkLabel) Role() Role    { return RoleLink }

// PanelLabel reveals Body inline, one character at a time.
type PanelLabel struct {
	Title string
	Rank  int
	Body  string
}

func (l *PanelLabel) Text() string  { return l.Title }
func (l *PanelLabel) Priority() int { return l.Rank }
func (l *PanelLabel) Role() Role    { return RoleInterface }

// RouteLabel is an interface label that moves to an internal page instead
// of opening a panel.
type RouteLabel struct {
	Title string
	Rank  int
	Path  string
}

func (l *RouteLabel) Text() string  { return l.Title }
func (l *RouteLabel) Priority() int { return l.Rank }
func (l *RouteLabel) Role() Role    { return RoleInterface }

// RankLabels returns labels ordered by precedence. Equal priorities keep
// their original order.
func RankLabels(labels []Label) []Label {
	ranked := append([]Label(nil), labels...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority() < ranked[j].Priority()
	})
	return ranked
}
