// Package watcher reloads a flame file when it changes on disk.
//
// # Overview
//
// Editors save in bursts: a truncate, a few writes, sometimes a rename of a
// temp file over the original. The watcher collects those events and calls
// back once things have been quiet for the debounce delay.
//
// # Architecture
//
//   - fsnotify watches the file's directory, so replace-by-rename saves are
//     still seen after the original inode is gone
//   - Events for other files in the directory are ignored
//   - FileChanged restarts the debounce timer; the callback runs on the
//     timer's goroutine
//
// # Example
//
//	w, err := watcher.NewWatcher(path, 300*time.Millisecond, func(path string) {
//	    flames, err := flame.ParseFile(path)
//	    program.Send(tui.FlamesLoadedMsg{Flames: flames, Err: err})
//	})
//	if err != nil {
//	    return err
//	}
//	w.Start()
//	defer w.Stop()
package watcher
