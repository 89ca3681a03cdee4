package pattern_test

import (
	"context"
	"fmt"
	"log"

	"github.com/mclog/mclog-go/pkg/mclog"
	"github.com/mclog/mclog-go/pkg/mclog/pattern"
)

func ExampleLoadBytes() {
	rf, err := pattern.LoadBytes([]byte(`version: 1
patterns:
  - id: essentials_join
    event_type: join
    regex: '\]: (?P<player>\S+) joined the server'
`))
	if err != nil {
		log.Fatal(err)
	}

	p, err := pattern.NewRegexParser(rf)
	if err != nil {
		log.Fatal(err)
	}
	chain := &mclog.ParserChain{Parsers: []mclog.Parser{p, mclog.DefaultParser{}}}

	res, _ := chain.ParseLine(context.Background(), "[10:00:00] [Server thread/INFO]: Alice joined the server")
	fmt.Println(res.Event.Type, res.Event.PlayerName)
	// Output: join Alice
}
