package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/and161185/tonefit/internal/client"
)

// printer renders results as aligned text, or as JSON with -json.
type printer struct {
	json bool
	w    io.Writer
}

func (p printer) table(header string, rows func(tw *tabwriter.Writer)) {
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	_ = tw.Flush()
}

func (p printer) user(u client.User) {
	if p.json {
		writeJSON(p.w, u)
		return
	}
	fmt.Fprintf(p.w, "%s (%s)\n", u.Email, u.ID)
}

func (p printer) analysis(a client.Analysis) {
	if p.json {
		writeJSON(p.w, a)
		return
	}
	fmt.Fprintf(p.w, "skin tone:   %s\n", a.SkinTone)
	fmt.Fprintf(p.w, "detected:    %s\n", a.DetectedSkinTone)
	fmt.Fprintf(p.w, "wear:        %s\n", strings.Join(a.RecommendedColors, ", "))
	fmt.Fprintf(p.w, "analysis id: %s\n", a.AnalysisID)
}

func (p printer) recommendations(recs []client.Recommendation) {
	if p.json {
		writeJSON(p.w, recs)
		return
	}
	if len(recs) == 0 {
		fmt.Fprintln(p.w, "no matching items")
		return
	}
	p.table("ITEM\tCOLOUR\tTYPE\tNAME", func(tw *tabwriter.Writer) {
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ItemID, r.BaseColour, r.ArticleType, r.ProductName)
		}
	})
}

func (p printer) categories(cats []client.Category) {
	if p.json {
		writeJSON(p.w, cats)
		return
	}
	p.table("CATEGORY\tSUB\tCOUNT", func(tw *tabwriter.Writer) {
		for _, c := range cats {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.MasterCategory, c.SubCategory, c.Count)
		}
	})
}

func (p printer) favorites(favs []client.Favorite) {
	if p.json {
		writeJSON(p.w, favs)
		return
	}
	if len(favs) == 0 {
		fmt.Fprintln(p.w, "no favorites yet")
		return
	}
	p.table("ITEM\tCOLOUR\tNAME\tADDED", func(tw *tabwriter.Writer) {
		for _, f := range favs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ItemID, f.BaseColour, f.ProductName, printTime(f.CreatedAt))
		}
	})
}
