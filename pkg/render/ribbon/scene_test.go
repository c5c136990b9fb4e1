package ribbon

import (
	"strings"
	"testing"

	"github.com/ctgplot/ctgplot/pkg/ctgmap"
)

// buildTestScene assembles a scene from the two-target fixture.
func buildTestScene(t *testing.T, opts Options) Scene {
	t.Helper()
	set := twoTargetSet()
	asg, err := Assign(set)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	sc, err := BuildScene(set, asg, opts)
	if err != nil {
		t.Fatalf("BuildScene() error: %v", err)
	}
	return sc
}

func TestBuildSceneTwoTier(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	if sc.BoxHeight != 3500 {
		t.Errorf("BoxHeight = %v, want 3500", sc.BoxHeight)
	}
	if sc.DetailY != 200 {
		t.Errorf("DetailY = %v, want 200", sc.DetailY)
	}
	if len(sc.Overview) != 2 {
		t.Errorf("overview group count = %d, want 2", len(sc.Overview))
	}
	if len(sc.Details) != 2 {
		t.Errorf("detail count = %d, want 2", len(sc.Details))
	}
	if sc.Overview[0].ID != "overview_chr1" || sc.Overview[1].ID != "overview_chr2" {
		t.Errorf("overview ids = %s, %s", sc.Overview[0].ID, sc.Overview[1].ID)
	}
	if sc.Details[0].Name != "chr1" || sc.Details[1].Name != "chr2" {
		t.Errorf("detail names = %s, %s", sc.Details[0].Name, sc.Details[1].Name)
	}
}

func TestBuildSceneSummaryFilter(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400, Target: FilterSummary})

	if len(sc.Overview) != 2 {
		t.Errorf("overview group count = %d, want 2", len(sc.Overview))
	}
	if len(sc.Details) != 0 {
		t.Errorf("detail count = %d, want 0", len(sc.Details))
	}
	if sc.BoxHeight != 180 {
		t.Errorf("BoxHeight = %v, want 180", sc.BoxHeight)
	}
}

func TestBuildSceneSingleTarget(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400, Target: "chr1"})

	if len(sc.Overview) != 0 {
		t.Errorf("overview group count = %d, want 0", len(sc.Overview))
	}
	if len(sc.Details) != 1 || sc.Details[0].Name != "chr1" {
		t.Fatalf("details = %+v, want one chr1 scene", sc.Details)
	}
	if sc.BoxHeight != 180 {
		t.Errorf("BoxHeight = %v, want 180", sc.BoxHeight)
	}
	if sc.DetailY != 0 {
		t.Errorf("DetailY = %v, want 0 (no overview above)", sc.DetailY)
	}
}

func TestBuildSceneDetailMagnification(t *testing.T) {
	full := buildTestScene(t, Options{PanelWidth: 1400})
	single := buildTestScene(t, Options{PanelWidth: 1400, Target: "chr1"})

	fullBackbone := full.Details[0].Group.Segments[0]
	singleBackbone := single.Details[0].Group.Segments[0]

	// Full-plot details run at 12x the shared scale; the single-target plot
	// uses its own layout so the two backbones differ.
	if fullBackbone.X2 == singleBackbone.X2 {
		t.Errorf("detail backbone widths coincide at %v; magnification not applied", fullBackbone.X2)
	}

	overviewBackbone := full.Overview[0].Segments[0]
	overviewWidth := overviewBackbone.X2 - overviewBackbone.X1
	if want := overviewWidth * 12; !closeTo(fullBackbone.X2-fullBackbone.X1, want) {
		t.Errorf("detail backbone width = %v, want %v (12x overview)", fullBackbone.X2-fullBackbone.X1, want)
	}
}

func closeTo(a, b float64) bool {
	d := a - b
	return d < 1e-6 && d > -1e-6
}

func TestOverviewBackboneAlternatesWidth(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	// Target id 0 gives width 4+((0+1)%2)*1.5 = 5.5; id 1 gives 4.
	if got := sc.Overview[0].Segments[0].Width; got != 5.5 {
		t.Errorf("chr1 backbone width = %v, want 5.5", got)
	}
	if got := sc.Overview[1].Segments[0].Width; got != 4 {
		t.Errorf("chr2 backbone width = %v, want 4", got)
	}
}

func TestOverviewSkipsDoublyDuplicatedRibbons(t *testing.T) {
	set := twoTargetSet()
	set.Records = append(set.Records, ctgmap.Record{
		TName: "chr1", TS: 10, TE: 20, QName: "ctgA", QS: 10, QE: 20,
		CtgLen: 1500, TDup: true, QDup: true,
	})
	asg, err := Assign(set)
	if err != nil {
		t.Fatalf("Assign() error: %v", err)
	}
	sc, err := BuildScene(set, asg, Options{PanelWidth: 1400})
	if err != nil {
		t.Fatalf("BuildScene() error: %v", err)
	}

	// chr1 carries two primary records but only one ribbon: the record
	// flagged duplicate on both sides is drawn nowhere.
	if got := len(sc.Overview[0].Quads); got != 1 {
		t.Errorf("chr1 overview ribbon count = %d, want 1", got)
	}
	if got := len(sc.Details[0].Group.Quads); got != 1 {
		t.Errorf("chr1 detail ribbon count = %d, want 1", got)
	}
}

func TestDetailAlternateOverlays(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	// ctgA's chr2 alignment is alternate: chr2's detail gets an alternate
	// target lane, chr1's detail gets an alternate query overlay.
	chr1, chr2 := sc.Details[0].Group, sc.Details[1].Group

	var altTarget, altQuery []Segment
	for _, s := range chr2.Segments {
		if s.Y == detailAltLaneY && s.Title != "" {
			altTarget = append(altTarget, s)
		}
	}
	for _, s := range chr1.Segments {
		if s.Y == detailAltQueryY {
			altQuery = append(altQuery, s)
		}
	}

	if len(altTarget) != 1 {
		t.Fatalf("chr2 alternate target lane count = %d, want 1", len(altTarget))
	}
	if want := "chr2 to chr1 with ctgA:1000-1300"; altTarget[0].Title != want {
		t.Errorf("alternate lane title = %q, want %q", altTarget[0].Title, want)
	}

	if len(altQuery) != 1 {
		t.Fatalf("chr1 alternate query overlay count = %d, want 1", len(altQuery))
	}
	if want := "ctgA@chr2:500-800"; altQuery[0].Title != want {
		t.Errorf("alternate overlay title = %q, want %q", altQuery[0].Title, want)
	}
	// Forward lane orientation anchors the overlay reversed: qs=QE, qe=QS.
	if altQuery[0].X1 <= altQuery[0].X2 {
		t.Errorf("forward-lane overlay should run right to left, got X1=%v X2=%v", altQuery[0].X1, altQuery[0].X2)
	}
}

func TestDetailRibbonTitle(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	quads := sc.Details[0].Group.Quads
	if len(quads) != 1 {
		t.Fatalf("chr1 detail ribbon count = %d, want 1", len(quads))
	}
	if want := "chr1:0-900 @ ctgA:100-1000 +:0:0"; quads[0].Title != want {
		t.Errorf("ribbon title = %q, want %q", quads[0].Title, want)
	}
}

func TestDetailCytobands(t *testing.T) {
	opts := Options{
		PanelWidth: 1400,
		Target:     "chr1",
		Cytobands: map[string][]ctgmap.Band{
			"chr1": {
				{Start: 0, End: 400, Name: "p11", Stain: "gpos50"},
				{Start: 400, End: 600, Name: "cen", Stain: "acen"},
				{Start: 600, End: 1000, Name: "q11", Stain: "gneg"},
			},
		},
	}
	sc := buildTestScene(t, opts)

	var bands []Segment
	for _, s := range sc.Details[0].Group.Segments {
		if s.Y == detailBackboneY {
			bands = append(bands, s)
		}
	}
	if len(bands) != 3 {
		t.Fatalf("backbone band count = %d, want 3", len(bands))
	}
	wantColors := []string{"#000", "#FF0", "#AAA"}
	for i, want := range wantColors {
		if bands[i].Color != want {
			t.Errorf("band %d color = %q, want %q", i, bands[i].Color, want)
		}
	}
}

func TestDetailHighlights(t *testing.T) {
	opts := Options{
		PanelWidth: 1400,
		Highlights: map[string][][2]uint32{"chr1": {{100, 300}}},
	}
	sc := buildTestScene(t, opts)

	var overviewHi, detailHi []Segment
	for _, s := range sc.Overview[0].Segments {
		if s.Y == overviewHighlightY {
			overviewHi = append(overviewHi, s)
		}
	}
	for _, s := range sc.Details[0].Group.Segments {
		if s.Y == detailHighlightY {
			detailHi = append(detailHi, s)
		}
	}

	if len(overviewHi) != 1 {
		t.Errorf("overview highlight count = %d, want 1", len(overviewHi))
	}
	if len(detailHi) != 1 {
		t.Fatalf("detail highlight count = %d, want 1", len(detailHi))
	}
	if detailHi[0].Title != "100-300" {
		t.Errorf("detail highlight title = %q, want 100-300", detailHi[0].Title)
	}
	if detailHi[0].Color != "#F00" {
		t.Errorf("detail highlight color = %q, want #F00", detailHi[0].Color)
	}
}

func TestSceneColorsArePaletteEntries(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	inPalette := func(c string) bool {
		for _, entry := range cmap {
			if entry == c {
				return true
			}
		}
		return false
	}

	for _, g := range sc.Overview {
		for _, q := range g.Quads {
			if !inPalette(q.Fill) {
				t.Errorf("overview ribbon fill %q not from palette", q.Fill)
			}
		}
	}
	for _, d := range sc.Details {
		for _, q := range d.Group.Quads {
			if !inPalette(q.Fill) {
				t.Errorf("detail ribbon fill %q not from palette", q.Fill)
			}
		}
		for _, s := range d.Group.Segments {
			if s.Y == detailLaneY && !inPalette(s.Color) {
				t.Errorf("lane color %q not from palette", s.Color)
			}
		}
	}
}

func TestOverviewLabels(t *testing.T) {
	sc := buildTestScene(t, Options{PanelWidth: 1400})

	for i, want := range []string{"chr1", "chr2"} {
		labels := sc.Overview[i].Labels
		if len(labels) != 1 || labels[0].Text != want {
			t.Errorf("overview group %d labels = %+v, want one %q", i, labels, want)
		}
	}
	if !strings.HasPrefix(sc.Overview[0].ID, "overview_") {
		t.Errorf("overview group id = %q, want overview_ prefix", sc.Overview[0].ID)
	}
}
