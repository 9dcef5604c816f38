package main

import "github.com/meysamhadeli/jjgen/cmd"

func main() {
	cmd.Execute()
}
