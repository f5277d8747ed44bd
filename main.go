package main

import "catalog-export/cmd"

func main() {
	cmd.Execute()
}
