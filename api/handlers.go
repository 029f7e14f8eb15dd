package api

import (
	"github.com/rpupo63/portfolio-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, router router) *routeHandlers {
	return &routeHandlers{
		adminCollections: map[string]adminCollection{
			database.CollectionProjects:    newContentHandler(db.ProjectRepo()),
			database.CollectionExperiences: newContentHandler(db.ExperienceRepo()),
			database.CollectionEducations:  newContentHandler(db.EducationRepo()),
			database.CollectionTechStacks:  newContentHandler(db.TechStackRepo()),
		},
		publicCollections: map[string]publicCollection{
			database.CollectionProjects:    newPublicHandler(db.ProjectRepo(), router.cache),
			database.CollectionExperiences: newPublicHandler(db.ExperienceRepo(), router.cache),
			database.CollectionEducations:  newPublicHandler(db.EducationRepo(), router.cache),
			database.CollectionTechStacks:  newPublicHandler(db.TechStackRepo(), router.cache),
		},
		queryHandler:   newQueryHandler(db.QueryRepo()),
		contactHandler: newContactHandler(db.QueryRepo(), router.notifier),
		authHandler:    newAuthHandler(router.adminPassword, router.sessions),
		adminHandler:   newAdminHandler(db, router.uploader),
		healthHandler:  newHealthHandler(db, router.startupTime, router.snapshots),
	}
}

// collections is the route registration order.
var collections = []string{
	database.CollectionProjects,
	database.CollectionExperiences,
	database.CollectionEducations,
	database.CollectionTechStacks,
}

