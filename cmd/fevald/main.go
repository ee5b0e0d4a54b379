package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/zephyrtronium/formulas"
	"github.com/zephyrtronium/formulas/internal/service"
)

var (
	addr    = kingpin.Flag("addr", "Address to listen on.").Envar("FEVAL_ADDR").Default(":8080").String()
	locname = kingpin.Flag("locale", "Default locale for decimal and group separators.").Envar("FEVAL_LOCALE").String()
)

func main() {
	log.SetFlags(log.LstdFlags)
	kingpin.Parse()

	name := *locname
	if name == "" {
		name = os.Getenv("LANG")
	}
	loc, err := formulas.LocaleNamed(name)
	if err != nil {
		log.Fatalf("locale %q: %v", name, err)
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           service.New(loc).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Printf("serving on %s with locale %v", *addr, loc.Tag)
	log.Fatal(srv.ListenAndServe())
}
