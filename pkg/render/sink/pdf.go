package sink

import (
	"bytes"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/matzehuels/avatarkit/pkg/avatar"
	"github.com/matzehuels/avatarkit/pkg/buildinfo"
	"github.com/matzehuels/avatarkit/pkg/errors"
)

// RenderPDF renders cfg as a one-page PDF. The page measures the logical
// surface size in points; the embedded image carries the raster scale.
func RenderPDF(cfg avatar.Config, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	img, err := RenderPNG(cfg, opts...)
	if err != nil {
		return nil, err
	}

	w, h := float64(o.width), float64(o.height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("avatar", true)
	pdf.SetCreator("avatarkit "+buildinfo.Version, true)
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("avatar", imgOpts, bytes.NewReader(img))
	pdf.ImageOptions("avatar", 0, 0, w, h, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "write pdf")
	}
	return buf.Bytes(), nil
}
