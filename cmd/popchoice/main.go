package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080/api/v1", "PopChoice API base URL")
	flag.Parse()

	client := NewClient(*addr, os.Stdin, os.Stdout)
	defer client.Close()

	if err := client.Run(); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Enjoy the movie!")
}
