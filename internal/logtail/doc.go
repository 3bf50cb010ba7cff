// Package logtail reads the end of perch's log file for the inspector.
//
// Tail seeks from the end of the file in fixed-size chunks, so the cost
// depends on the number of lines wanted rather than the size of the log.
// A missing log file is not an error; it simply has no lines yet.
//
// LevelOf picks the severity out of a line written by the text logger
// ("2026/10/16 12:00:00 WARN perch: skipped theme file ..."), letting the UI
// color lines without parsing them.
package logtail
