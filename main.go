package main

import "github.com/frahmantamala/order-payment/cmd"

func main() {
	cmd.Execute()
}
