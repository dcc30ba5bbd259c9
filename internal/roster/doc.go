// Package roster holds the gradebook data model and the Store that owns it.
//
// A roster is an ordered list of students, each with a row of grade cells.
// Every row has exactly Columns() cells; AddColumn and RemoveColumn are the
// only operations that change the width and they apply to every row.
//
// The Store persists the whole roster to a key-value backend after each
// mutation. Loading never fails on bad content: an unreadable entry is
// treated as an empty roster.
package roster
