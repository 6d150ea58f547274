package addrsplit

import (
	"context"
	"fmt"
	"testing"

	"github.com/fatih/color"
	joeguotldextract "github.com/joeguo/tldextract"
	tld "github.com/jpillora/go-tld"
	mjd2021usatldextract "github.com/mjd2021usa/tldextract"
)

func BenchmarkComparison(b *testing.B) {
	var benchmarkURLs = []string{
		"https://news.google.com",
		"https://www.example.gov.bs:7105/sub/cc/directory?docid=720&hl=en#dayone",
		"https://iupac.org/iupac-announces-the-2021-top-ten-emerging-technologies-in-chemistry/",
	}

	benchmarks := []struct {
		name string
	}{
		{"AddrSplit"},            // this module
		{"JPilloraGoTld"},        // github.com/jpillora/go-tld
		{"JoeGuoTldExtract"},     // github.com/joeguo/tldextract
		{"Mjd2021USATldExtract"}, // github.com/mjd2021usa/tldextract
	}

	cache := "/tmp/tld.cache"

	for _, benchmarkURL := range benchmarkURLs {
		for _, bm := range benchmarks {
			if bm.name == "AddrSplit" {
				tlds := testTLDs
				b.Run(fmt.Sprint(bm.name), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						ParseURL(benchmarkURL, tlds)
					}
				})
			} else if bm.name == "JPilloraGoTld" {
				// Provides the Port and Path subcomponents
				// Cannot handle urls without Scheme subcomponent
				b.Run(fmt.Sprint(bm.name), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						tld.Parse(benchmarkURL)
					}
				})
			} else if bm.name == "JoeGuoTldExtract" {
				JoeGuoTldExtract, _ := joeguotldextract.New(cache, false)
				b.Run(fmt.Sprint(bm.name), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						JoeGuoTldExtract.Extract(benchmarkURL)
					}
				})
			} else if bm.name == "Mjd2021USATldExtract" {
				Mjd2021USATldExtract, _ := mjd2021usatldextract.New(cache, false)
				b.Run(fmt.Sprint(bm.name), func(b *testing.B) {
					for i := 0; i < b.N; i++ {
						Mjd2021USATldExtract.Extract(benchmarkURL)
					}
				})
			}
		}
		color.New().Println()
		color.New(color.FgHiGreen, color.Bold).Print("Benchmarks completed for URL : ")
		color.New(color.FgHiBlue).Println(benchmarkURL)
		color.New(color.FgHiWhite).Println("=======")
	}
}

func BenchmarkParseURLsConcurrent(b *testing.B) {
	inputs := make([]string, 0, 10000)
	for i := 0; i < cap(inputs); i++ {
		inputs = append(inputs, fmt.Sprintf("https://host%d.example.gov.bs/path/%d?q=%d", i, i, i))
	}
	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				ParseURLsConcurrent(context.Background(), inputs, testTLDs, workers)
			}
		})
	}
}
