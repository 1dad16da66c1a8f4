package main

import "github.com/kiesman99/tokenizer/cmd"

func main() {
	cmd.Execute()
}
