// The thirtyseven program is a command line and acme user interface to the Highrise and Backpack
// clients in this repository.
//
// Configuration lives in the file lib/thirtyseven/env within the user's home directory, in KEY=value
// lines: HIGHRISE_ACCOUNT and HIGHRISE_TOKEN for the CRM side, BACKPACK_ACCOUNT and BACKPACK_TOKEN for
// the organizer side. Either pair may be omitted; verbs needing the missing client will refuse to run.
// The file must not be group or world readable since it holds credentials.
//
// Verbs: "lookup PATTERN" searches contacts by name and prints name, email and phone columns; "pages"
// lists Backpack pages; "remind TEXT..." creates a reminder (a leading +N makes it fire in N minutes,
// per the vendor's content syntax); "acme" starts the editor interface.
//
// In acme, the reminders window's Remind command creates a reminder from the current selection, and
// "Lookup pattern" opens a window with matching contacts. Zap followed by a reminder id deletes that
// reminder.
package main // import "github.com/gmarchetti/thirtyseven/cmd/thirtyseven"
