// Package pass implements the transformation protocol over concrete trees.
//
// A pass takes an immutable tree and returns a replacement tree or fails.
// Internal passes run in process; external passes work on the serialized
// document, which the pipeline encodes before and decodes after the call:
//
//	rename, _ := pass.RenameIdentifier("clk", "clk_i")
//	lint := pass.Command("lint", []string{"svlint-pass"}, pass.CommandOptions{Timeout: 10 * time.Second})
//
//	res, err := pass.New([]pass.Pass{rename, lint}).Run(ctx, tree)
//	var failure *pass.PassFailure
//	if errors.As(err, &failure) {
//	    // res.Last() is the output of the last pass that succeeded.
//	}
//
// An external pass reports failure either by returning an error or by
// answering with the envelope {"failure": "<message>"}. A document that
// does not decode also fails the pass; a partially valid tree is never
// accepted.
//
// Runs share nothing. FanOut applies read-only analyses to one tree
// concurrently.
package pass
