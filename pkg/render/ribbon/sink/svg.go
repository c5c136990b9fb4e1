// Package sink serializes an assembled [ribbon.Scene] into its final
// output document.
//
// Two formats are supported:
//
//   - [RenderSVG]: a standalone SVG document with one group per overview
//     target and one nested <svg> viewport per detail target.
//   - [RenderHTML]: the same document wrapped in a minimal HTML page with
//     a zoom script bound to every detail viewport.
//
// The document structure is part of the external contract: the outer
// element carries the id "WholeGenomeViwer" [sic], overview groups the id
// "overview_<target>", and each detail viewport the target's name as its
// id plus the shared class "chr_view" for interactive targeting.
// Identical scenes serialize to byte-identical documents.
package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/ctgplot/ctgplot/pkg/render/ribbon"
)

// Fixed stroke/fill styling shared by every emitted shape.
const (
	shapeOpacity      = "0.7"
	segmentStrokeOp   = "0.7"
	quadStrokeOp      = "0.4"
	quadStrokeWidth   = "0.25"
	labelFontSize     = "6px"
	titleFontSize     = "20px"
	detailViewTop     = -25
	detailViewHeight  = 130
	detailLabelOffset = 20
)

// RenderSVG serializes the scene as a standalone SVG document.
func RenderSVG(sc ribbon.Scene) []byte {
	var buf bytes.Buffer
	writeDocument(&buf, sc)
	return buf.Bytes()
}

func writeDocument(buf *bytes.Buffer, sc ribbon.Scene) {
	// "WholeGenomeViwer" [sic]: downstream tooling keys on this exact id.
	fmt.Fprintf(buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s" preserveAspectRatio="none" id="WholeGenomeViwer" overflow="visible">`+"\n",
		num(-sc.PanelWidth*0.05), num(-50), num(sc.PanelWidth*0.95*2), num(sc.BoxHeight),
		num(sc.PanelWidth*2), num(sc.BoxHeight))

	for _, g := range sc.Overview {
		writeGroup(buf, g)
	}

	y := sc.DetailY
	for _, d := range sc.Details {
		fmt.Fprintf(buf, `  <text x="0" y="%s" font-size="%s" font-family="monospace">%s</text>`+"\n",
			num(y+detailLabelOffset), titleFontSize, escape(d.Name))
		fmt.Fprintf(buf, `  <svg viewBox="0 %s %s %s" width="%s" height="%s" preserveAspectRatio="none" y="%s" id="%s" class="chr_view" overflow="visible">`+"\n",
			num(detailViewTop), num(sc.PanelWidth), num(detailViewHeight),
			num(sc.PanelWidth), num(detailViewHeight), num(y), escape(d.Name))
		writeGroup(buf, d.Group)
		buf.WriteString("  </svg>\n")
		y += detailViewHeight
	}

	buf.WriteString("</svg>\n")
}

func writeGroup(buf *bytes.Buffer, g ribbon.Group) {
	if g.ID != "" {
		fmt.Fprintf(buf, `  <g id="%s">`+"\n", escape(g.ID))
	} else {
		buf.WriteString("  <g>\n")
	}
	for _, s := range g.Segments {
		writeSegment(buf, s)
	}
	for _, l := range g.Labels {
		fmt.Fprintf(buf, `    <text x="%.4f" y="%s" font-size="%s" font-family="monospace">%s</text>`+"\n",
			l.X, num(l.Y), labelFontSize, escape(l.Text))
	}
	for _, q := range g.Quads {
		writeQuad(buf, q)
	}
	buf.WriteString("  </g>\n")
}

func writeSegment(buf *bytes.Buffer, s ribbon.Segment) {
	fmt.Fprintf(buf, `    <path stroke="%s" stroke-width="%s" opacity="%s" stroke-opacity="%s" d="M %.4f %s L %.4f %s"`,
		s.Color, num(s.Width), shapeOpacity, segmentStrokeOp, s.X1, num(s.Y), s.X2, num(s.Y))
	closeShape(buf, s.Title)
}

func writeQuad(buf *bytes.Buffer, q ribbon.Quad) {
	fmt.Fprintf(buf, `    <path fill="%s" stroke="#000" stroke-width="%s" opacity="%s" stroke-opacity="%s" d="M %.4f %s L %.4f %s L %.4f %s L %.4f %s Z"`,
		q.Fill, quadStrokeWidth, shapeOpacity, quadStrokeOp,
		q.TS, num(q.Top), q.TE, num(q.Top), q.QE, num(q.Bottom), q.QS, num(q.Bottom))
	closeShape(buf, q.Title)
}

// closeShape finishes a path element, nesting a <title> hover tooltip when
// one is set.
func closeShape(buf *bytes.Buffer, title string) {
	if title == "" {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, `><title>%s</title></path>`+"\n", escape(title))
}

// num formats an attribute value without trailing zeros.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
