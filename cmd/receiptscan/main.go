package main

import "github.com/wenyin0054/fundora-app-sub001/cmd/receiptscan/cmd"

func main() {
	cmd.Execute()
}
