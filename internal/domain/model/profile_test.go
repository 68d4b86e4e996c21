package model_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/lm-xiao-fen/my-inft-repo/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTagsCoercion(t *testing.T) {
	Convey("Given JSON payloads carrying tags in different shapes", t, func() {
		Convey("When tags is an array of strings", func() {
			var p model.Draft
			So(json.Unmarshal([]byte(`{"name":"a","tags":["a","b"]}`), &p), ShouldBeNil)
			So(p.Tags, ShouldResemble, model.Tags{"a", "b"})
		})

		Convey("When tags is a single string", func() {
			var p model.Draft
			So(json.Unmarshal([]byte(`{"name":"a","tags":"x"}`), &p), ShouldBeNil)
			So(p.Tags, ShouldResemble, model.Tags{"x"})
		})

		Convey("When tags is absent", func() {
			var p model.Draft
			So(json.Unmarshal([]byte(`{"name":"a"}`), &p), ShouldBeNil)
			So(p.Tags, ShouldBeNil)
		})

		Convey("When tags is an empty string", func() {
			var p model.Draft
			So(json.Unmarshal([]byte(`{"name":"a","tags":""}`), &p), ShouldBeNil)
			So(p.Tags, ShouldResemble, model.Tags{})
		})

		Convey("When tags is something undecodable", func() {
			var p model.Draft
			So(json.Unmarshal([]byte(`{"name":"a","tags":42}`), &p), ShouldBeNil)
			So(p.Tags, ShouldResemble, model.Tags{})
		})

		Convey("Then nil tags marshal as an empty array, never null", func() {
			data, err := json.Marshal(model.Profile{ID: "p-1", Name: "a"})
			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"tags":[]`)
		})
	})
}

func TestScoreCoercion(t *testing.T) {
	Convey("Given JSON payloads carrying scores in different shapes", t, func() {
		cases := []struct {
			raw  string
			want model.Score
		}{
			{`{"score":10}`, 10},
			{`{"score":2.5}`, 2.5},
			{`{"score":"7"}`, 7},
			{`{"score":" 3 "}`, 3},
			{`{"score":"abc"}`, 0},
			{`{"score":null}`, 0},
			{`{}`, 0},
		}
		for _, tc := range cases {
			var p model.Draft
			So(json.Unmarshal([]byte(tc.raw), &p), ShouldBeNil)
			So(p.Score, ShouldEqual, tc.want)
		}
	})
}

func TestPatchApply(t *testing.T) {
	Convey("Given a stored profile and a sparse patch", t, func() {
		p := model.Profile{
			ID:      "p-1",
			Name:    "张三",
			Avatar:  "https://example.com/a.jpg",
			Contact: "a@example.com",
			Tags:    model.Tags{"up主"},
			BioMD:   "# hi",
			Score:   10,
		}

		Convey("When only the score is patched", func() {
			var patch model.Patch
			So(json.Unmarshal([]byte(`{"score":5}`), &patch), ShouldBeNil)
			patch.Apply(&p)

			Convey("Then every other field is unchanged", func() {
				So(p.Score, ShouldEqual, model.Score(5))
				So(p.Name, ShouldEqual, "张三")
				So(p.Avatar, ShouldEqual, "https://example.com/a.jpg")
				So(p.Contact, ShouldEqual, "a@example.com")
				So(p.Tags, ShouldResemble, model.Tags{"up主"})
				So(p.BioMD, ShouldEqual, "# hi")
			})
		})

		Convey("When tags are omitted they keep the existing value", func() {
			var patch model.Patch
			So(json.Unmarshal([]byte(`{"name":"李四"}`), &patch), ShouldBeNil)
			patch.Apply(&p)
			So(p.Name, ShouldEqual, "李四")
			So(p.Tags, ShouldResemble, model.Tags{"up主"})
		})

		Convey("When tags are a single string they are wrapped", func() {
			var patch model.Patch
			So(json.Unmarshal([]byte(`{"tags":"剪辑"}`), &patch), ShouldBeNil)
			patch.Apply(&p)
			So(p.Tags, ShouldResemble, model.Tags{"剪辑"})
		})

		Convey("When tags are an explicit empty string the stored tags clear", func() {
			var patch model.Patch
			So(json.Unmarshal([]byte(`{"tags":""}`), &patch), ShouldBeNil)
			patch.Apply(&p)
			So(p.Tags, ShouldResemble, model.Tags{})
		})

		Convey("When a field is JSON null the existing value survives", func() {
			var patch model.Patch
			So(json.Unmarshal([]byte(`{"name":null,"score":1}`), &patch), ShouldBeNil)
			patch.Apply(&p)
			So(p.Name, ShouldEqual, "张三")
			So(p.Score, ShouldEqual, model.Score(1))
		})
	})
}

func TestNewID(t *testing.T) {
	Convey("Given generated profile ids", t, func() {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			id := model.NewID()
			So(strings.HasPrefix(id, "p-"), ShouldBeTrue)
			seen[id] = true
		}

		Convey("Then collisions are absent across a burst", func() {
			So(len(seen), ShouldBeGreaterThan, 90)
		})
	})
}

func TestSortByScore(t *testing.T) {
	Convey("Given an unsorted collection", t, func() {
		profiles := []model.Profile{
			{ID: "a", Score: 1},
			{ID: "b", Score: 10},
			{ID: "c", Score: 5},
			{ID: "d", Score: 10},
		}

		Convey("When sorted by score", func() {
			model.SortByScore(profiles)

			Convey("Then order is descending and stable between equals", func() {
				So(profiles[0].ID, ShouldEqual, "b")
				So(profiles[1].ID, ShouldEqual, "d")
				So(profiles[2].ID, ShouldEqual, "c")
				So(profiles[3].ID, ShouldEqual, "a")
			})
		})
	})
}
