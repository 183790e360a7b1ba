package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maxcnunes/httpfake"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/five82/crumb/internal/logging"
	"github.com/five82/crumb/internal/mealdb"
)

const apiRoot = "/api/json/v1/1"

const dessertListing = `{"meals":[
	{"idMeal":"1","strMeal":"Cake","strMealThumb":"http://x/c.jpg"},
	{"idMeal":"2","strMeal":"Tart","strMealThumb":"http://x/t.jpg"},
	{"idMeal":"3","strMeal":"Pie","strMealThumb":"http://x/p.jpg"}
]}`

func newFake(t *testing.T) (*httpfake.HTTPFake, *mealdb.Client) {
	t.Helper()
	fake := httpfake.New()
	t.Cleanup(fake.Server.Close)
	client, err := mealdb.NewClient(fake.ResolveURL(apiRoot))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return fake, client
}

func lookupJSON(id, name, ingredient, measure string) string {
	return fmt.Sprintf(`{"meals":[{"idMeal":%q,"strMeal":%q,"strCategory":"Dessert",`+
		`"strInstructions":"Bake.","strIngredient1":%q,"strMeasure1":%q,"strIngredient2":""}]}`,
		id, name, ingredient, measure)
}

func TestList_Table(t *testing.T) {
	fake, client := newFake(t)
	fake.NewHandler().Get(apiRoot + "/filter.php?c=Dessert").Reply(http.StatusOK).BodyString(dessertListing)

	var out bytes.Buffer
	if err := List(context.Background(), client, "Dessert", &out, false); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{"ID", "NAME", "Cake", "Tart", "Pie"} {
		if !strings.Contains(got, want) {
			t.Fatalf("table missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "Cake") > strings.Index(got, "Pie") {
		t.Fatalf("table not in server order:\n%s", got)
	}
}

func TestList_JSONAndEmpty(t *testing.T) {
	fake, client := newFake(t)
	fake.NewHandler().Get(apiRoot + "/filter.php?c=Dessert").Reply(http.StatusOK).BodyString(dessertListing)
	fake.NewHandler().Get(apiRoot + "/filter.php?c=Nothing").Reply(http.StatusOK).BodyString(`{"meals":null}`)

	var out bytes.Buffer
	if err := List(context.Background(), client, "Dessert", &out, true); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	var recipes []mealdb.RecipeSummary
	if err := json.Unmarshal(out.Bytes(), &recipes); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(recipes) != 3 || recipes[0].ThumbnailURL != "http://x/c.jpg" {
		t.Fatalf("recipes = %+v", recipes)
	}

	out.Reset()
	if err := List(context.Background(), client, "Nothing", &out, false); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if !strings.Contains(out.String(), "No recipes in Nothing") {
		t.Fatalf("empty output = %q", out.String())
	}
}

func TestShow(t *testing.T) {
	fake, client := newFake(t)
	fake.NewHandler().Get(apiRoot + "/lookup.php?i=53049").Reply(http.StatusOK).
		BodyString(lookupJSON("53049", "Apam balik", "Milk", "1 cup"))
	fake.NewHandler().Get(apiRoot + "/lookup.php?i=0").Reply(http.StatusOK).BodyString(`{"meals":null}`)
	fake.NewHandler().Get(apiRoot + "/lookup.php?i=bad").Reply(http.StatusOK).BodyString(`{"meals":[`)

	var out bytes.Buffer
	if err := Show(context.Background(), client, "53049", &out, false); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	for _, want := range []string{"Apam balik", "- Milk: 1 cup", "Instructions\nBake."} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("show output missing %q:\n%s", want, out.String())
		}
	}

	err := Show(context.Background(), client, "0", &out, false)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Show(0) error = %v, want ErrUnavailable", err)
	}

	err = Show(context.Background(), client, "bad", &out, true)
	if !mealdb.IsDecode(err) {
		t.Fatalf("Show(bad) error = %v, want DecodeError", err)
	}
}

func TestExport(t *testing.T) {

	Convey("Given a category with three listed recipes", t, func() {
		fake := httpfake.New()
		defer fake.Server.Close()
		client, err := mealdb.NewClient(fake.ResolveURL(apiRoot))
		So(err, ShouldBeNil)

		fake.NewHandler().Get(apiRoot + "/filter.php?c=Dessert").Reply(http.StatusOK).BodyString(dessertListing)
		fake.NewHandler().Get(apiRoot + "/lookup.php?i=1").Reply(http.StatusOK).BodyString(lookupJSON("1", "Cake", "Flour", "200g"))
		fake.NewHandler().Get(apiRoot + "/lookup.php?i=3").Reply(http.StatusOK).BodyString(lookupJSON("3", "Pie", "Apple", "4"))

		Convey("When one recipe has vanished", func() {
			fake.NewHandler().Get(apiRoot + "/lookup.php?i=2").Reply(http.StatusOK).BodyString(`{"meals":null}`)

			var out bytes.Buffer
			stats, err := Export(context.Background(), client, "Dessert", 2, &out, logging.Discard())

			Convey("Then the rest are written in listing order", func() {
				So(err, ShouldBeNil)
				So(stats, ShouldResemble, ExportStats{Listed: 3, Exported: 2, Skipped: 1})

				var ids []string
				scanner := bufio.NewScanner(&out)
				for scanner.Scan() {
					var d mealdb.RecipeDetail
					So(json.Unmarshal(scanner.Bytes(), &d), ShouldBeNil)
					ids = append(ids, d.ID)
				}
				So(ids, ShouldResemble, []string{"1", "3"})
			})
		})

		Convey("When one lookup fails", func() {
			fake.NewHandler().Get(apiRoot + "/lookup.php?i=2").Reply(http.StatusServiceUnavailable).BodyString(`down`)

			var out bytes.Buffer
			_, err := Export(context.Background(), client, "Dessert", 1, &out, logging.Discard())

			Convey("Then the error is returned and nothing is written", func() {
				So(mealdb.IsNetwork(err), ShouldBeTrue)
				So(mealdb.StatusCode(err), ShouldEqual, http.StatusServiceUnavailable)
				So(out.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestSetup_AppliesOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CRUMB_CATEGORY", "Seafood")

	env, err := Setup(Options{
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
		BaseURL:    "http://127.0.0.1:9/api/",
		LogStderr:  true,
	})
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	defer env.Close()

	if env.Config.Category != "Seafood" {
		t.Fatalf("Category = %q, want Seafood from env", env.Config.Category)
	}
	if env.Client.BaseURL() != "http://127.0.0.1:9/api" {
		t.Fatalf("BaseURL = %q", env.Client.BaseURL())
	}
	if env.Config.LogFile != logging.Stderr {
		t.Fatalf("LogFile = %q, want stderr", env.Config.LogFile)
	}

	if _, err := Setup(Options{ConfigPath: filepath.Join(t.TempDir(), "x.toml"), BaseURL: "ftp://nope", LogStderr: true}); err == nil {
		t.Fatalf("Setup accepted an ftp base URL")
	}
}
