package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/gmarchetti/thirtyseven/backpack"
	"github.com/gmarchetti/thirtyseven/lookup"
)

func printResults(w io.Writer, results []lookup.Result) {
	sort.Sort(resultsByName(results))
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%v\t%v\t%v\n", r.Name, r.Email, r.Phone)
	}
}

func printPages(w io.Writer, pages []backpack.Attrs) {
	sort.Sort(pagesByTitle(pages))
	for _, p := range pages {
		title, _ := p.Get("title")
		_, _ = fmt.Fprintf(w, "%v\t%v\n", p.Int("id"), title)
	}
}

func printReminders(w io.Writer, reminders []backpack.Attrs) {
	for _, r := range reminders {
		printReminder(w, r)
	}
}

func printReminder(w io.Writer, r backpack.Attrs) {
	at, _ := r.Get("remind_at")
	content, _ := r.Get("content")
	_, _ = fmt.Fprintf(w, "%v\t%v\t%v\n", r.Int("id"), at, content)
}

type resultsByName []lookup.Result

func (results resultsByName) Len() int {
	return len(results)
}

func (results resultsByName) Swap(i, j int) {
	results[i], results[j] = results[j], results[i]
}

func (results resultsByName) Less(i, j int) bool {
	return results[i].Name < results[j].Name
}

type pagesByTitle []backpack.Attrs

func (pages pagesByTitle) Len() int {
	return len(pages)
}

func (pages pagesByTitle) Swap(i, j int) {
	pages[i], pages[j] = pages[j], pages[i]
}

func (pages pagesByTitle) Less(i, j int) bool {
	a, _ := pages[i].Get("title")
	b, _ := pages[j].Get("title")
	return a < b
}
