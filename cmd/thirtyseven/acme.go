package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"9fans.net/go/acme"
	"github.com/gmarchetti/thirtyseven/backpack"
	"github.com/gmarchetti/thirtyseven/lookup"
	log "github.com/sirupsen/logrus"
)

type windowMode int

const (
	modeReminders windowMode = iota // /thirtyseven/reminders
	modePages                       // /thirtyseven/pages
	modeLookup                      // /thirtyseven/lookup/$pattern
)

func (mode windowMode) String() string {
	switch mode {
	case modeReminders:
		return "reminders"
	case modePages:
		return "pages"
	case modeLookup:
		return "lookup"
	default:
		log.WithField("mode", int(mode)).Error("Missing mode string, returning as number")
		return fmt.Sprintf("%d", int(mode))
	}
}

var all struct {
	sync.Mutex
	m map[*acme.Win]*window
}

type window struct {
	*acme.Win

	mode    windowMode
	pattern string // For modeLookup
}

// resetTag is used when a new window is created.
func (w *window) resetTag() {
	var tag string
	switch w.mode {
	case modeReminders:
		tag = " Get Remind Pages Lookup Zap "
	case modePages:
		tag = " Get Reminders Lookup "
	case modeLookup:
		tag = " Get Reminders Pages "
	}
	_ = w.Ctl("cleartag")
	_ = w.Fprintf("tag", tag)
}

// exit is called after the window's event loop is over, i.e., the window has been closed in acme. When
// the last window goes, so does the process.
func (w *window) exit() {
	all.Lock()
	defer all.Unlock()
	if all.m[w.Win] == w {
		delete(all.m, w.Win)
	}
	if len(all.m) == 0 {
		os.Exit(0)
	}
}

// newWindow creates a window in acme without a specific purpose, and registers it in the global map of
// windows.
func newWindow(pathname string) *window {
	all.Lock()
	defer all.Unlock()
	if all.m == nil {
		all.m = make(map[*acme.Win]*window)
	}

	logEntry := log.WithField("path", pathname)
	aw, err := acme.New()
	if err != nil {
		logEntry.WithField("cause", err).Warning("Could not create acme window")
		time.Sleep(10 * time.Millisecond)
		aw, err = acme.New()
		if err != nil {
			logEntry.WithField("cause", err).Fatal("Could not create acme window again")
		}
	}
	aw.SetErrorPrefix(pathname)
	_ = aw.Name(pathname)

	w := &window{Win: aw}
	all.m[w.Win] = w
	return w
}

func newRemindersWindow() {
	title := "/thirtyseven/reminders"
	if acme.Show(title) != nil {
		return
	}
	w := newWindow(title)
	w.mode = modeReminders
	w.resetTag()
	go w.load()
	go w.loop()
}

func newPagesWindow() {
	title := "/thirtyseven/pages"
	if acme.Show(title) != nil {
		return
	}
	w := newWindow(title)
	w.mode = modePages
	w.resetTag()
	go w.load()
	go w.loop()
}

func newLookupWindow(pattern string) {
	title := "/thirtyseven/lookup/" + pattern
	if acme.Show(title) != nil {
		return
	}
	w := newWindow(title)
	w.mode = modeLookup
	w.pattern = pattern
	w.resetTag()
	go w.load()
	go w.loop()
}

func (w *window) load() {
	var buf bytes.Buffer
	var err error
	switch w.mode {
	case modeReminders:
		var reminders []backpack.Attrs
		if reminders, err = mustBackpack().ListReminders(); err == nil {
			printReminders(&buf, reminders)
		}
	case modePages:
		var pages []backpack.Attrs
		if pages, err = mustBackpack().ListPages(); err == nil {
			printPages(&buf, pages)
		}
	case modeLookup:
		var results []lookup.Result
		constraints := []lookup.Constraint{{Field: lookup.Name, Pattern: w.pattern}}
		if results, err = lookup.Search(mustHighrise(), constraints, nil); err == nil {
			printResults(&buf, results)
		}
	}
	w.Clear()
	if err != nil {
		_, _ = w.Write("body", []byte(err.Error()))
	} else {
		w.PrintTabbed(buf.String())
		_ = w.Ctl("clean")
	}
	_ = w.Addr("0")
	_ = w.Ctl("dot=addr")
	_ = w.Ctl("show")
}

// selection returns the text currently selected in the window's body.
func (w *window) selection() string {
	if err := w.Ctl("addr=dot"); err != nil {
		return ""
	}
	data, err := w.ReadAll("xdata")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Look is invoked via button-3 click in acme. In the pages window a page id opens nothing yet, so only
// name-looking text in a lookup window is handled: it narrows the search.
func (w *window) Look(text string) bool {
	if w.mode == modeLookup {
		if _, err := strconv.ParseInt(text, 10, 64); err != nil {
			newLookupWindow(text)
			return true
		}
	}
	return false
}

// Execute is triggered by button-2 click in acme.
func (w *window) Execute(cmd string) bool {
	if strings.HasPrefix(cmd, "Lookup ") {
		pattern := strings.TrimSpace(strings.TrimPrefix(cmd, "Lookup "))
		newLookupWindow(pattern)
		return true
	}
	if cmd == "Lookup" {
		if sel := w.selection(); sel != "" {
			newLookupWindow(sel)
			return true
		}
		w.Err("Lookup needs an argument or a selection")
		return true
	}
	if cmd == "Remind" || strings.HasPrefix(cmd, "Remind ") {
		content := strings.TrimSpace(strings.TrimPrefix(cmd, "Remind"))
		if content == "" {
			content = w.selection()
		}
		if content == "" {
			w.Err("Remind needs an argument or a selection")
			return true
		}
		if _, err := mustBackpack().CreateReminder(content); err != nil {
			w.Errf("Could not create reminder: %v", err)
		} else {
			onReminderChanged()
		}
		return true
	}
	if strings.HasPrefix(cmd, "Zap ") {
		what := strings.TrimSpace(strings.TrimPrefix(cmd, "Zap "))
		id, err := strconv.ParseInt(what, 10, 64)
		if err != nil {
			return false
		}
		switch w.mode {
		case modeReminders:
			if err := mustBackpack().DeleteReminder(id); err != nil {
				w.Errf("Could not delete reminder %d: %v", id, err)
			} else {
				onReminderChanged()
			}
		case modePages:
			if err := mustBackpack().DeletePage(id); err != nil {
				w.Errf("Could not delete page %d: %v", id, err)
			} else {
				mustBackpack().InvalidatePages()
				onPageChanged()
			}
		default:
			return false
		}
		return true
	}
	switch cmd {
	case "Get":
		w.load()
		return true
	case "Reminders":
		newRemindersWindow()
		return true
	case "Pages":
		newPagesWindow()
		return true
	case "Del":
		_ = w.Del(false)
		return true
	default:
		return false
	}
}

func (w *window) loop() {
	defer w.exit()
	w.EventLoop(w)
}

func onReminderChanged() {
	all.Lock()
	defer all.Unlock()
	for _, w := range all.m {
		if w.mode == modeReminders {
			w.load()
		}
	}
}

func onPageChanged() {
	all.Lock()
	defer all.Unlock()
	for _, w := range all.m {
		if w.mode == modePages {
			w.load()
		}
	}
}
