package editor_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/pathmaker/pkg/editor"
	"github.com/matzehuels/pathmaker/pkg/mapfile"
)

func ExampleSession_Replay() {
	script := `
down 0 0 0
up 0 0 10
down 0 0 100
move 40 0
move 80 0
up 80 0 300
`
	events, err := editor.ParseScript(strings.NewReader(script))
	if err != nil {
		fmt.Println(err)
		return
	}

	s := editor.NewSession(editor.DefaultOptions())
	if _, err := s.Replay(context.Background(), events); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(mapfile.Encode(s.Bundle()))
	// Output:
	// $<{0(0,0)[1]}{1(40,0)[0][2]}{2(80,0)[1]}>$
}
