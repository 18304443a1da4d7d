package charts

import (
	"bufio"
	"io"

	"github.com/midbel/svg"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

// Drawner builds the chart as an in-memory element instead of writing it out,
// so a caller can embed several charts in one document.
type Drawner interface {
	Drawn(...Data) svg.Element
}

type LegendEntry struct {
	Label string
	Color string
}

// AxisDrawer renders an axis along an edge of the drawing area.
type AxisDrawer interface {
	Render(length, size, left, top float64) svg.Element
}

type Chart[T, U ScalerConstraint] struct {
	Title  string
	Width  float64
	Height float64

	Padding

	Left   AxisDrawer
	Right  AxisDrawer
	Top    AxisDrawer
	Bottom AxisDrawer

	Legend struct {
		Title   string
		Orient  Orientation
		Entries []LegendEntry
	}
}

func (c Chart[T, U]) DrawingWidth() float64 {
	return c.Width - c.Padding.Horizontal()
}

func (c Chart[T, U]) DrawingHeight() float64 {
	return c.Height - c.Padding.Vertical()
}

func (c Chart[T, U]) Render(w io.Writer, set ...Data) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	c.Drawn(set...).Render(bw)
}

// Drawn produces a complete fresh document on every call. Re-rendering after
// a filter change can not accumulate stale shapes because nothing of a
// previous call survives.
func (c Chart[T, U]) Drawn(set ...Data) svg.Element {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(c.Width, c.Height)
	el.OmitProlog = true

	if c.Title != "" {
		el.Append(c.drawTitle())
	}
	el.Append(c.drawAxis())
	for _, s := range set {
		ar := c.getArea(s)
		ar.Append(s.Render())
		el.Append(ar.AsElement())
	}
	if lg := c.drawLegend(); lg != nil {
		el.Append(lg)
	}
	return el.AsElement()
}

func (c Chart[T, U]) getArea(s Data) svg.Group {
	var g svg.Group
	g.Class = append(g.Class, "area")
	g.Transform = svg.Translate(c.Padding.Left-s.OffsetX(), c.Padding.Top+s.OffsetY())
	return g
}

func (c Chart[T, U]) drawTitle() svg.Element {
	tx := svg.NewText(c.Title)
	tx.Pos = svg.NewPos(c.Width/2, FontSize*1.6)
	tx.Font = svg.NewFont(FontSize * 1.4)
	tx.Anchor = "middle"
	return tx.AsElement()
}

func (c Chart[T, U]) drawLegend() svg.Element {
	entries := c.Legend.Entries
	if len(entries) == 0 {
		return nil
	}
	var (
		offset = FontSize * 1.4
		height = float64(len(entries)) * offset
		width  float64
		rows   float64
		grp    svg.Group
	)
	grp.Class = append(grp.Class, "legend")
	if c.Legend.Title != "" {
		height += offset
		rows = 1

		tt := svg.NewText(c.Legend.Title)
		tt.Font = svg.NewFont(FontSize)
		tt.Baseline = "middle"
		grp.Append(tt.AsElement())
	}
	for i, e := range entries {
		if n := float64(len(e.Label)); i == 0 || n > width {
			width = n
		}
		var g svg.Group
		g.Transform = svg.Translate(0, (float64(i)+rows)*offset)

		var sw svg.Rect
		sw.Pos = svg.NewPos(0, -FontSize/2)
		sw.Dim = svg.NewDim(20, FontSize)
		sw.Fill = svg.NewFill(e.Color)

		tx := svg.NewText(e.Label)
		tx.Pos = svg.NewPos(30, 0)
		tx.Font = svg.NewFont(FontSize)
		tx.Baseline = "middle"

		g.Append(sw.AsElement())
		g.Append(tx.AsElement())
		grp.Append(g.AsElement())
	}
	width *= FontSize * 0.4

	var left, top float64
	switch c.Legend.Orient {
	case OrientRight:
		left = c.Width - c.Padding.Left - width
		top = (c.Height - c.Padding.Top - height) / 2
	case OrientRight | OrientBottom:
		left = c.Width - c.Padding.Left - width
		top = c.Height - c.Padding.Top - height
	case OrientBottom:
		left = (c.Width - width) / 2
		top = c.Height - c.Padding.Top - height
	case OrientLeft | OrientBottom:
		left = c.Padding.Left
		top = c.Height - c.Padding.Top - height
	case OrientLeft:
		left = c.Padding.Left
		top = (c.Height - c.Padding.Vertical() - height) / 2
	case OrientLeft | OrientTop:
		top = c.Padding.Top
		left = c.Padding.Left
	case OrientTop:
		left = (c.Width - width) / 2
		top = c.Padding.Top
	case OrientRight | OrientTop:
		top = c.Padding.Top
		left = c.Width - c.Padding.Left - width
	default:
		return nil
	}
	grp.Transform = svg.Translate(left, top)
	return grp.AsElement()
}

func (c Chart[T, U]) drawAxis() svg.Element {
	var g svg.Group
	g.Id = "axis"
	if c.Left != nil {
		el := c.Left.Render(c.DrawingHeight(), c.DrawingWidth(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	}
	if c.Right != nil {
		el := c.Right.Render(c.DrawingHeight(), c.DrawingWidth(), c.Width-c.Padding.Right, c.Padding.Top)
		g.Append(el)
	}
	if c.Top != nil {
		el := c.Top.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Padding.Top)
		g.Append(el)
	}
	if c.Bottom != nil {
		el := c.Bottom.Render(c.DrawingWidth(), c.DrawingHeight(), c.Padding.Left, c.Height-c.Padding.Bottom)
		g.Append(el)
	}
	return g.AsElement()
}

// Placeholder draws a centered message in an otherwise empty chart area. It
// is the visible output for a filter selection matching no records.
func Placeholder(width, height float64, msg string) svg.Element {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(width, height)
	el.OmitProlog = true

	tx := svg.NewText(msg)
	tx.Pos = svg.NewPos(width/2, height/2)
	tx.Font = svg.NewFont(FontSize * 1.2)
	tx.Anchor = "middle"
	tx.Baseline = "middle"
	el.Append(tx.AsElement())
	return el.AsElement()
}

// ErrorBox replaces a chart whose data could not be loaded.
func ErrorBox(width, height float64, msg string) svg.Element {
	el := svg.NewSVG()
	el.Dim = svg.NewDim(width, height)
	el.OmitProlog = true

	var box svg.Rect
	box.Pos = svg.NewPos(0, 0)
	box.Dim = svg.NewDim(width, height)
	box.Fill = svg.NewFill("#fdecea")
	el.Append(box.AsElement())

	tx := svg.NewText(msg)
	tx.Pos = svg.NewPos(width/2, height/2)
	tx.Font = svg.NewFont(FontSize * 1.2)
	tx.Anchor = "middle"
	tx.Baseline = "middle"
	el.Append(tx.AsElement())
	return el.AsElement()
}

func RenderElement(w io.Writer, el svg.Element) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	el.Render(bw)
}
