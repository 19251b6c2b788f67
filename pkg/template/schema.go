// schema.go — CUE schema for card documents.
package template

import (
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cerrors "cuelang.org/go/cue/errors"
)

// Schema is the CUE schema a card document must satisfy. Numbers are
// checked as CUE numbers since JSON decoding does not distinguish integers;
// integer-ness is enforced when the document is decoded into a Document.
const Schema = `
#Color: =~"^#[0-9a-fA-F]{6}$"

#Phase: {
	text:  string & !=""
	color: #Color
}

#Static: {
	type:        "static"
	text:        string & !=""
	color:       #Color
	phases?:     [...#Phase]
	dot_cycles?: number & >0
}

#Animated: {
	type: "animated"
	phases: [#Phase, ...#Phase]
	dot_cycles?: number & >0
	text?:       string
	color?:      #Color
}

#Card: {
	id:          =~"^[A-Za-z0-9_-]+$"
	icon:        string
	title:       string
	description: string
	tagline:     string
	status:      #Static | #Animated
	...
}

theme: {
	card_width:     number & >0
	card_padding:   number & >=0
	background:     #Color
	text_primary:   #Color
	text_secondary: #Color
	scale?:         number & >0
	fonts?: {
		regular?: [...string]
		bold?: [...string]
		mono?: [...string]
	}
	...
}

cards: [...#Card]
output?: string
`

// Validate performs a validation of the provided decoded document, returning
// a list of invalid paths and a CUE errors.Error explaining the issues found
// if the document is invalid according to Schema.
func Validate(doc any) (paths [][]string, err error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(Schema)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	v := ctx.Encode(doc)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	u := schema.Unify(v)
	err = u.Validate(cue.Concrete(true), cue.Final())
	errs := cerrors.Errors(err)
	if len(errs) == 0 {
		return nil, nil
	}
	paths = make([][]string, 0, len(errs))
	for _, err := range errs {
		p := cerrors.Path(err)
		if p != nil {
			paths = append(paths, p)
		}
	}
	return unique(paths), err
}

// ValidationError reports a document that does not satisfy Schema.
type ValidationError struct {
	Paths [][]string // invalid paths, as returned by Validate
	Err   error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if len(e.Paths) != 0 {
		fields := make([]string, len(e.Paths))
		for i, p := range e.Paths {
			fields[i] = strings.Join(p, ".")
		}
		fmt.Fprintf(&b, "invalid fields %s", strings.Join(fields, ", "))
	}
	details := strings.TrimSpace(cerrors.Details(e.Err, nil))
	if details != "" {
		if b.Len() != 0 {
			b.WriteString(":\n")
		}
		b.WriteString(details)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// unique returns paths lexically sorted in ascending order and with repeated
// elements omitted.
func unique(paths [][]string) [][]string {
	slices.SortFunc(paths, slices.Compare)
	return slices.CompactFunc(paths, slices.Equal)
}
