package testctl

// Indirection layer to allow stubbing in tests

var (
	fnVerifyTools = verifyTools

	fnListModels = listModels
	fnFetchModel = fetchModel

	fnRunGoTests       = runGoTests
	fnRunBlackboxTests = runBlackboxTests

	fnSmoke = smoke

	fnHasHostModels = hasHostModels
)
