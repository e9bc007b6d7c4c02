// Command corvidcheck is a small demo harness for the core's inference
// pipeline. It hand-builds a handful of core expression trees (no lexer
// or parser is part of this module) and runs each through a session,
// printing the generalized scheme or a rendered diagnostic.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/corvidlang/corvid/internal/config"
	"github.com/corvidlang/corvid/internal/coreir"
	"github.com/corvidlang/corvid/internal/ident"
	"github.com/corvidlang/corvid/internal/session"
)

var verbose = flag.Bool("v", false, "also print each scheme's quantified-variable count and the number of tracked nodes")

func main() {
	flag.Parse()

	fmt.Println("Corvid type inference demo")
	fmt.Println("==========================")
	fmt.Println()

	runDemo("identity: \\x. x", identityDemo)
	runDemo("let polymorphism: let id = \\x. x in (id, id)", letPolymorphismDemo)
	runDemo("mutual recursion: isEven/isOdd", mutualRecursionDemo)
	runDemo("type error: if 1 then 2 else 3", typeErrorDemo)
}

type demo func() (*session.Session, []coreir.Decl)

func runDemo(title string, build demo) {
	fmt.Printf("--- %s\n", title)
	s, decls := build()
	results, reports := s.Infer(decls)

	for _, r := range results {
		fmt.Printf("%s : %s\n", r.Name, r.Scheme.Normalize())
		if *verbose {
			fmt.Printf("  (quantifies over %d variable(s))\n", r.Scheme.Btvs())
		}
	}
	for _, r := range reports {
		r.Render(os.Stdout)
	}
	if *verbose {
		fmt.Printf("(tracked nodes: %d)\n", s.Tracked.Len())
	}
	fmt.Println()
}

var loc = ident.Internal

func identityDemo() (*session.Session, []coreir.Decl) {
	var id coreir.NodeID
	next := func() coreir.NodeID { id++; return id }

	body := coreir.NewVar(next(), loc, "x")
	lam := coreir.NewLambda(next(), loc, "x", body)

	s := session.New(config.Default())
	return s, []coreir.Decl{{Name: "identity", Expr: lam}}
}

func letPolymorphismDemo() (*session.Session, []coreir.Decl) {
	var id coreir.NodeID
	next := func() coreir.NodeID { id++; return id }

	idLambda := coreir.NewLambda(next(), loc, "x", coreir.NewVar(next(), loc, "x"))
	body := coreir.NewTuple(next(), loc, []coreir.Expr{
		coreir.NewVar(next(), loc, "id"),
		coreir.NewVar(next(), loc, "id"),
	})
	letExpr := coreir.NewLet(next(), loc, "id", idLambda, body)

	s := session.New(config.Default())
	return s, []coreir.Decl{{Name: "main", Expr: letExpr}}
}

func mutualRecursionDemo() (*session.Session, []coreir.Decl) {
	var id coreir.NodeID
	next := func() coreir.NodeID { id++; return id }

	isEven := coreir.NewLambda(next(), loc, "n",
		coreir.NewApplication(next(), loc, coreir.NewVar(next(), loc, "isOdd"), coreir.NewVar(next(), loc, "n")))
	isOdd := coreir.NewLambda(next(), loc, "n",
		coreir.NewApplication(next(), loc, coreir.NewVar(next(), loc, "isEven"), coreir.NewVar(next(), loc, "n")))

	s := session.New(config.Default())
	return s, []coreir.Decl{
		{Name: "isEven", Expr: isEven},
		{Name: "isOdd", Expr: isOdd},
	}
}

func typeErrorDemo() (*session.Session, []coreir.Decl) {
	var id coreir.NodeID
	next := func() coreir.NodeID { id++; return id }

	cond := coreir.NewLiteral(next(), loc, coreir.IntLit, "1")
	ifExpr := coreir.NewConditional(next(), loc, cond,
		coreir.NewLiteral(next(), loc, coreir.IntLit, "2"),
		coreir.NewLiteral(next(), loc, coreir.IntLit, "3"))

	s := session.New(config.Default())
	return s, []coreir.Decl{{Name: "bad", Expr: ifExpr}}
}
