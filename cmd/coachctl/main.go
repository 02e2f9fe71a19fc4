// Command coachctl inspects and edits training sessions through the coachdesk API.
package main

func main() {
	Execute()
}
