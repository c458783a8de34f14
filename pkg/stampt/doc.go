// Package stampt is the composition root for the stampt note tool.
//
// It connects the note service in pkg/core with the filesystem and clipboard
// adapters. Configuration is explicit: the notes directory is passed in
// rather than looked up from the working directory.
//
// Usage:
//
//	svc, err := stampt.New(
//		stampt.WithDir(filepath.Join(cwd, "stampt")),
//		stampt.WithLogger(logger),
//	)
//
//	n, err := svc.SaveNote(ctx, "remember the milk")
package stampt
