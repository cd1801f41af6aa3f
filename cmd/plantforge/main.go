// Command plantforge generates synthetic ISA-95 manufacturing datasets:
// cross-referenced CSV tables spanning sensing, production, operations and
// business planning levels.
package main

func main() {
	Execute()
}
