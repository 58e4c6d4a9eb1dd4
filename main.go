package main

import "payment-relay/cmd"

func main() {
	cmd.Execute()
}
