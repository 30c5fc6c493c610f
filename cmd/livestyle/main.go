// Command livestyle renders theme files through the live stylesheet
// machinery of package livestyle.
//
//	livestyle render theme.yaml
//	livestyle dump --html page.html theme.yaml
package main

func main() {
	Execute()
}
