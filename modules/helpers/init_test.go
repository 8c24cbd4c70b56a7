package helpers

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStrSlug(t *testing.T) {

	var tests = []struct {
		in  string
		out string
	}{
		{"Size", "size"},
		{" Color de fondo ", "color-de-fondo"},
		{"Tamaño", "tamano"},
		{"--", ""},
	}

	Convey("Option keys are slugged", t, func() {

		for _, test := range tests {

			Convey(test.in+" should be "+test.out, func() {

				So(StrSlug(test.in), ShouldEqual, test.out)
			})
		}
	})
}

func TestCleanText(t *testing.T) {
	Convey("Free text is cleaned", t, func() {
		So(CleanText("<b>Product</b>   1"), ShouldEqual, "Product 1")
		So(CleanText("Café"), ShouldEqual, "Café")
		So(len([]rune(CleanText(strings.Repeat("á", 400)))), ShouldEqual, MaxTextLength)
	})

	Convey("Literal text survives cleaning", t, func() {
		So(CleanText("R&D Mug"), ShouldEqual, "R&D Mug")
		So(CleanText("a<b size"), ShouldEqual, "a<b size")
		So(CleanText("1 < 2 > 0"), ShouldEqual, "1 < 2 > 0")
		So(CleanText("<i>R&D</i> Mug"), ShouldEqual, "R&D Mug")
	})
}
