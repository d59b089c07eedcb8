// Package template resolves layered template directories into a single file
// set and runs every file through a chain of processors.
//
// A Template is an immutable definition: Add, AddDir, Merge, Filter, Process
// and WithFS all return a new Template and leave the receiver untouched.
//
//	tmpl := template.New(types.NewSource("./base")).
//		AddDir("./variant").
//		Process(func(req *template.Request, res *template.Response) error {
//			res.ReplaceText(regexp.MustCompile(`__NAME__`), "acme").Next()
//			return nil
//		})
//
// Files from sources added later override files at the same relative path
// from sources added earlier.
//
// Processors drive the chain themselves. A processor either calls
// Response.Next to hand the file to the following processor or
// Response.Complete to finish it; returning from the processor does not
// advance anything. This lets a processor finish its work on another
// goroutine and continue the chain from there. A file whose processors
// never call Next or Complete never finishes, and Execute waits on it until
// the caller's context is done.
package template
