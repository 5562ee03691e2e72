package main

import "github.com/walexbarnes/accountabillabuddy/cmd/abb/root"

func main() {
	root.Execute()
}
