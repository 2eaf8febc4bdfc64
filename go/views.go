package petclinicserver

// View names the clinic front end renders. Handlers return them alongside the
// model so the client picks the right template.
const (
	viewWelcome      = "welcome"
	viewFindOwners   = "owners/findOwners"
	viewOwnersList   = "owners/ownersList"
	viewOwnerDetails = "owners/ownerDetails"
	viewOwnerForm    = "owners/createOrUpdateOwnerForm"
	viewPetForm      = "pets/createOrUpdatePetForm"
	viewVisitForm    = "pets/createOrUpdateVisitForm"
	viewVetList      = "vets/vetList"
)
