package sink

import (
	"bytes"

	"github.com/ctgplot/ctgplot/pkg/render/ribbon"
)

// zoomScript rescales a detail viewport's viewBox on primary mouse-down:
// alt-click zooms in by 1.25, a plain click zooms out by 0.8.
const zoomScript = `<script>
document.addEventListener('readystatechange', event => {
    if (event.target.readyState === "complete") {
        var views = document.getElementsByClassName("chr_view");
        for (let i = 0; i < views.length; i++) {
            views[i].addEventListener('mousedown', function(event) {
                event.preventDefault();
                const viewBoxValues = views[i].getAttribute('viewBox').split(' ').map(val => parseFloat(val));
                let viewBox = { x: viewBoxValues[0], y: viewBoxValues[1], width: viewBoxValues[2], height: viewBoxValues[3] };
                if (event.button != 0) {
                    return;
                }
                let scalingFactor;
                if (event.altKey) {
                    scalingFactor = 1.25;
                } else {
                    scalingFactor = 0.8;
                }
                viewBox.width *= scalingFactor;
                views[i].setAttribute('viewBox', viewBox.x + ' ' + viewBox.y + ' ' + viewBox.width + ' ' + viewBox.height);
            });
        }
    }
});
</script>`

// RenderHTML serializes the scene as an interactive HTML page embedding
// the SVG document and the zoom script.
func RenderHTML(sc ribbon.Scene) []byte {
	var buf bytes.Buffer
	buf.WriteString("<html><body>\n")
	buf.WriteString(zoomScript)
	buf.WriteString("\n")
	buf.WriteString(`<div style="overflow:scroll;">` + "\n")
	writeDocument(&buf, sc)
	buf.WriteString("</div></body></html>\n")
	return buf.Bytes()
}
