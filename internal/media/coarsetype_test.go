package media

import "testing"

func TestTypeOf(t *testing.T) {
	cases := []struct {
		path string
		want CoarseType
	}{
		{"notes.txt", TypeText},
		{"report.PDF", TypeText},
		{"/tmp/photos/IMG_0042.JPG", TypeImage},
		{"screenshot 2026-01-03.png", TypeImage},
		{"contract_review.wav", TypeAudio},
		{"podcast.mp3", TypeAudio},
		{"holiday.mkv", TypeVideo},
		{"archive.zip", TypeGeneric},
		{"Makefile", TypeGeneric},
		{"", TypeGeneric},
	}
	for _, tc := range cases {
		if got := TypeOf(tc.path); got != tc.want {
			t.Errorf("TypeOf(%q) = %s, want %s", tc.path, got, tc.want)
		}
	}
}

func TestCoarseTypeValid(t *testing.T) {
	for _, ct := range []CoarseType{TypeText, TypeImage, TypeAudio, TypeVideo, TypeGeneric} {
		if !ct.Valid() {
			t.Errorf("expected %s to be valid", ct)
		}
	}
	if CoarseType("disc").Valid() {
		t.Error("expected unknown coarse type to be invalid")
	}
}
