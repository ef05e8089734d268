// Package nameconv decomposes delimited asset and scene names into named
// fields according to a configurable naming convention, and rebuilds a
// canonical name from the fields it recognized.
//
// This package allows you to:
//   - Declare a convention as an ordered list of rules
//   - Validate names and read back per-rule values
//   - Reconstruct the canonical form of a name
//   - Try a name against several conventions with a [Chain]
//
// # Rules
//
// A [Rule] claims at most one token of a name. There are three kinds:
//
//   - [PatternRule] searches the token with one regular expression.
//   - [AlternativeRule] tries several regular expressions in order and
//     keeps the first that matches.
//   - [ComposedRule] splits the token on its own separator and evaluates the
//     pieces against a nested [Convention], so "010-005" can yield both a
//     scene and a shot.
//
// Each rule is either [Mandatory] or [Optional].
//
// # Basic Usage
//
//	sceneShot := nameconv.New(nameconv.WithSeparator("-"))
//	_ = sceneShot.Add(
//	    nameconv.MustPattern("scene", `^[0-9]{3}$`, nameconv.Mandatory),
//	    nameconv.MustPattern("shot", `^[0-9]{3}$`, nameconv.Optional),
//	)
//
//	conv, err := nameconv.NewWithRules([]nameconv.Rule{
//	    nameconv.MustPattern("type", `^[a-z]{3}$`, nameconv.Mandatory),
//	    nameconv.MustPattern("name", `^[a-zA-Z]+$`, nameconv.Mandatory),
//	    nameconv.MustPattern("variant", `^[0-9]{2}$`, nameconv.Optional),
//	    nameconv.MustComposed("scene_shot", sceneShot, nameconv.Optional),
//	    nameconv.MustPattern("version", `^v[0-9]{3}$`, nameconv.Mandatory),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := conv.Evaluate("mdl_policeCar_10_010-005_v001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.String("variant"))  // 10
//	fmt.Println(m.Reconstructed())    // mdl_policeCar_10_010-005_v001
//
// # Matching
//
// The name is split on the separator, keeping empty tokens. Tokens are taken
// left to right; each goes to the first rule, in declaration order, that is
// still unsatisfied and accepts it. The assignment is greedy and never
// backtracks, so an optional rule declared early can claim a token that a
// later mandatory rule needed. Declare rules from most to least specific.
//
// # Errors
//
// Evaluate returns typed errors that match sentinel values with errors.Is:
// [ErrTooManyTokens], [ErrNotEnoughTokens], [ErrUnmatchedToken] and
// [ErrMissingRules]. Configuration errors are [ErrDuplicateName]; field
// edits made with [Convention.Set] may fail with [ErrBadValue] or
// [ErrUnknownRule].
//
// # Concurrency
//
// Evaluation is a pure function of the name and the rule definitions. A
// configured Convention can be shared by any number of goroutines. A
// [Session] remembers one evaluation and is meant for a single goroutine.
//
// # Convention Files
//
// Conventions can be declared in YAML with the [convfile] subpackage:
//
//	import "github.com/colorium/nameconv/pkg/nameconv/convfile"
//
//	conv, err := convfile.BuildFromFile("convention.yaml")
package nameconv
