package main

import "github.com/PierreLepagnol/foodops/cmd"

func main() {
	cmd.Execute()
}
