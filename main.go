package main

import "github.com/water-vapor/gpt-oss/cmd"

func main() {
	cmd.Execute()
}
