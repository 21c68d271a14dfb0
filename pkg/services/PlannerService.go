package services

import (
	"cmp"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/adampresley/flickralbums/pkg/models"
)

const (
	DefaultRenameRootMarker = `F:\My Pictures\Flickr Upload\`

	IntentDeleteByPrefix     = "delete-by-prefix"
	IntentRenameByPattern    = "rename-by-pattern"
	IntentAssignFromManifest = "assign-from-manifest"
	IntentReorderByRecreate  = "reorder-by-recreate"
	IntentRestoreFromBackup  = "restore-from-backup"
	IntentBulkUpload         = "bulk-upload"
	IntentUploadDirectory    = "upload-directory"

	uploadRefPrefix         = "upload:"
	albumRefPrefix          = "album:"
	restoredAlbumRefPrefix  = "restored-album:"
	recreatedAlbumRefPrefix = "recreated-album:"
	deletedAlbumRefPrefix   = "deleted-album:"
	noImagesReason          = "no image files"
)

var datedTitle = regexp.MustCompile(`^\d{8}`)

type PlannerServicer interface {
	FindDuplicates(albums []models.Album) []models.Album
	FindUndatedAlbums(albums []models.Album) []models.Album
	ExtractTitle(description string) string
	PlanDeleteByPrefix(albums []models.Album, prefix string) models.Plan
	PlanRenameByPattern(albums []models.Album, markerPrefix string) models.Plan
	PlanAssignFromManifest(albums []models.Album, manifest []models.ManifestEntry, memberships map[string]string) models.Plan
	PlanReorderByRecreate(albums []models.Album, prefix string) (models.Plan, []models.BackupRecord)
	PlanRestore(existing []models.Album, records []models.BackupRecord) models.Plan
	PlanBulkUpload(existing []models.Album, dirs []models.LocalDirectory, start, end string) models.Plan
	PlanUploadDirectory(existing []models.Album, dir models.LocalDirectory, title string) models.Plan
}

type PlannerServiceConfig struct {
	// RenameRootMarker is the folder path that precedes the album name in descriptions.
	RenameRootMarker string
	ImageExtensions  []string
}

/*
PlannerService turns a snapshot of remote state plus an intent into a plan.
Every method is pure: the same snapshot always yields the same plan.
*/
type PlannerService struct {
	renamePattern   *regexp.Regexp
	imageExtensions []string
}

func NewPlannerService(config PlannerServiceConfig) PlannerService {
	marker := config.RenameRootMarker

	if marker == "" {
		marker = DefaultRenameRootMarker
	}

	extensions := config.ImageExtensions

	if len(extensions) == 0 {
		extensions = DefaultImageExtensions
	}

	marker = strings.TrimSuffix(marker, `\`)

	return PlannerService{
		renamePattern:   regexp.MustCompile(regexp.QuoteMeta(marker) + `\\([^\\]+)\\`),
		imageExtensions: extensions,
	}
}

// FindDuplicates returns every album whose title is shared with another, sorted by title then id.
func (s PlannerService) FindDuplicates(albums []models.Album) []models.Album {
	counts := map[string]int{}

	for _, album := range albums {
		counts[album.Title]++
	}

	result := []models.Album{}

	for _, album := range albums {
		if counts[album.Title] > 1 {
			result = append(result, album)
		}
	}

	slices.SortFunc(result, func(a, b models.Album) int {
		return cmp.Or(cmp.Compare(a.Title, b.Title), cmp.Compare(a.ID, b.ID))
	})

	return result
}

// FindUndatedAlbums returns albums whose title does not start with an 8 digit date.
func (s PlannerService) FindUndatedAlbums(albums []models.Album) []models.Album {
	result := []models.Album{}

	for _, album := range albums {
		if !datedTitle.MatchString(album.Title) {
			result = append(result, album)
		}
	}

	return result
}

/*
PlanDeleteByPrefix deletes every album whose title starts with prefix along
with all of its photos. An album's photos are always deleted before the
album itself. Albums must carry their PhotoIDs.
*/
func (s PlannerService) PlanDeleteByPrefix(albums []models.Album, prefix string) models.Plan {
	plan := models.Plan{Intent: IntentDeleteByPrefix}

	if prefix == "" {
		plan.Warnings = append(plan.Warnings, "an empty prefix matches every album; nothing was planned")
		return plan
	}

	for _, album := range albums {
		if !strings.HasPrefix(album.Title, prefix) {
			continue
		}

		for _, photoID := range album.PhotoIDs {
			plan.Operations = append(plan.Operations, models.DeletePhoto(photoID))
		}

		plan.Operations = append(plan.Operations, models.DeleteAlbum(album.ID, album.Title))
	}

	return plan
}

// ExtractTitle pulls the folder name that follows the root marker out of an album description.
func (s PlannerService) ExtractTitle(description string) string {
	description = strings.ReplaceAll(description, "&quot;", `"`)
	match := s.renamePattern.FindStringSubmatch(description)

	if match == nil {
		return ""
	}

	return match[1]
}

func (s PlannerService) PlanRenameByPattern(albums []models.Album, markerPrefix string) models.Plan {
	plan := models.Plan{Intent: IntentRenameByPattern}

	for _, album := range albums {
		if !strings.HasPrefix(album.Title, markerPrefix) {
			continue
		}

		newTitle := s.ExtractTitle(album.Description)

		switch {
		case newTitle == "":
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: album.Title, Reason: "description did not contain the expected path"})
		case newTitle == album.Title:
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: album.Title, Reason: "title already matches description"})
		default:
			plan.Operations = append(plan.Operations, models.RenameAlbum(album.ID, album.Title, newTitle, album.Description))
		}
	}

	return plan
}

/*
PlanAssignFromManifest adds manifest photos to the album with the matching
title. memberships maps photo id to the id of the album that already holds
it, "" meaning none. Photos in any album at all are left where they are, and
photos missing from memberships are skipped because their state is unknown.
*/
func (s PlannerService) PlanAssignFromManifest(albums []models.Album, manifest []models.ManifestEntry, memberships map[string]string) models.Plan {
	plan := models.Plan{Intent: IntentAssignFromManifest}
	byTitle := firstAlbumByTitle(albums)
	planned := map[string]bool{}

	for _, entry := range manifest {
		album, ok := byTitle[entry.Title]

		if !ok {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: entry.Title, Reason: "album does not exist"})
			continue
		}

		for _, photoID := range entry.Photos {
			existing, known := memberships[photoID]

			switch {
			case !known:
				plan.Skipped = append(plan.Skipped, models.Skip{Subject: photoID, Reason: "album membership unknown"})
			case existing != "":
				plan.Skipped = append(plan.Skipped, models.Skip{Subject: photoID, Reason: fmt.Sprintf("already in album %s", existing)})
			case planned[photoID]:
				plan.Skipped = append(plan.Skipped, models.Skip{Subject: photoID, Reason: "listed more than once in manifest"})
			default:
				planned[photoID] = true
				plan.Operations = append(plan.Operations, models.AddPhotoToAlbum(album.ID, photoID))
			}
		}
	}

	return plan
}

/*
PlanReorderByRecreate rebuilds matching albums in case-insensitive title
order by deleting each one, creating it again with its first photo as the
primary and adding the remaining photos in their recorded order. The
returned backup holds every matching album, including ones that could not
be planned, and must be persisted before the plan runs.
*/
func (s PlannerService) PlanReorderByRecreate(albums []models.Album, prefix string) (models.Plan, []models.BackupRecord) {
	plan := models.Plan{Intent: IntentReorderByRecreate}
	backup := []models.BackupRecord{}
	selected := []models.Album{}

	for _, album := range albums {
		if strings.HasPrefix(album.Title, prefix) {
			selected = append(selected, album)
		}
	}

	slices.SortStableFunc(selected, func(a, b models.Album) int {
		return cmp.Or(
			cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.ID, b.ID),
		)
	})

	for _, album := range selected {
		backup = append(backup, models.BackupRecord{
			ID:          album.ID,
			Title:       album.Title,
			Description: album.Description,
			PhotoIDs:    slices.Clone(album.PhotoIDs),
		})

		if !album.HasPhotos() {
			integrityErr := models.NewServiceError(models.KindPlanIntegrity, album.ID, models.ErrMissingPrimaryPhoto)
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("NOT REORDERING '%s': %s", album.Title, integrityErr))
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: album.Title, Reason: integrityErr.Error()})
			continue
		}

		ref := recreatedAlbumRefPrefix + album.ID
		deletedRef := deletedAlbumRefPrefix + album.ID

		/*
		 * The album is only recreated once the old one is gone, otherwise
		 * a failed delete would leave two albums with the same title
		 */
		plan.Operations = append(plan.Operations,
			models.DeleteAlbum(album.ID, album.Title).Named(deletedRef),
			models.CreateAlbum(album.Title, album.Description, album.PhotoIDs[0], ref).RequiresRef(deletedRef),
		)

		for _, photoID := range album.PhotoIDs[1:] {
			plan.Operations = append(plan.Operations, models.AddPhotoToAlbum(models.Placeholder(ref), photoID))
		}
	}

	return plan, backup
}

// PlanRestore recreates backed up albums that no longer exist under their title.
func (s PlannerService) PlanRestore(existing []models.Album, records []models.BackupRecord) models.Plan {
	plan := models.Plan{Intent: IntentRestoreFromBackup}
	byTitle := firstAlbumByTitle(existing)

	for _, record := range records {
		if album, ok := byTitle[record.Title]; ok {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: record.Title, Reason: fmt.Sprintf("album exists as %s", album.ID)})
			continue
		}

		if len(record.PhotoIDs) == 0 {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: record.Title, Reason: models.ErrMissingPrimaryPhoto.Error()})
			continue
		}

		ref := restoredAlbumRefPrefix + record.ID

		plan.Operations = append(plan.Operations, models.CreateAlbum(record.Title, record.Description, record.PhotoIDs[0], ref))

		for _, photoID := range record.PhotoIDs[1:] {
			plan.Operations = append(plan.Operations, models.AddPhotoToAlbum(models.Placeholder(ref), photoID))
		}
	}

	return plan
}

/*
PlanBulkUpload plans one new album per local directory whose name falls in
[start, end]. Directories already present as an album title are skipped.
Photos come from the source subfolder when there is one, otherwise from
the directory itself.
Each album's photos are uploaded first, then the album is created with the
first upload as its primary photo and the remaining uploads are added.
*/
func (s PlannerService) PlanBulkUpload(existing []models.Album, dirs []models.LocalDirectory, start, end string) models.Plan {
	plan := models.Plan{Intent: IntentBulkUpload}
	titles := firstAlbumByTitle(existing)
	planned := map[string]bool{}

	sorted := slices.Clone(dirs)
	slices.SortStableFunc(sorted, func(a, b models.LocalDirectory) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Path, b.Path))
	})

	for _, dir := range sorted {
		if dir.Name < start || dir.Name > end {
			continue
		}

		if _, ok := titles[dir.Name]; ok {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: dir.Name, Reason: "album already exists"})
			continue
		}

		if planned[dir.Name] {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: dir.Path, Reason: "another directory with this name is already planned"})
			continue
		}

		files := s.imageFiles(dir.Files)

		if len(files) == 0 {
			plan.Skipped = append(plan.Skipped, models.Skip{Subject: dir.Path, Reason: noImagesReason})
			continue
		}

		if !dir.HasSourceFolder {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf("%s has no source subfolder, uploading its own files", dir.Path))
		}

		planned[dir.Name] = true
		plan.Operations = append(plan.Operations, s.directoryOperations(dir, files, dir.Name, "")...)
	}

	return plan
}

/*
PlanUploadDirectory uploads a single directory into the album called title
(the directory name when empty). An existing album with that title receives
every upload; otherwise the album is created from the first one.
*/
func (s PlannerService) PlanUploadDirectory(existing []models.Album, dir models.LocalDirectory, title string) models.Plan {
	plan := models.Plan{Intent: IntentUploadDirectory}

	if title == "" {
		title = dir.Name
	}

	files := s.imageFiles(dir.Files)

	if len(files) == 0 {
		plan.Skipped = append(plan.Skipped, models.Skip{Subject: dir.Path, Reason: noImagesReason})
		return plan
	}

	existingID := ""

	if album, ok := firstAlbumByTitle(existing)[title]; ok {
		existingID = album.ID
		plan.Warnings = append(plan.Warnings, fmt.Sprintf("album '%s' already exists (%s), photos will be added to it", title, album.ID))
	}

	plan.Operations = s.directoryOperations(dir, files, title, existingID)
	return plan
}

func (s PlannerService) directoryOperations(dir models.LocalDirectory, files []string, title, existingAlbumID string) []models.Operation {
	result := []models.Operation{}
	uploadRefs := make([]string, 0, len(files))

	for _, file := range files {
		localPath := filepath.Join(dir.UploadPath, file)
		ref := uploadRefPrefix + localPath

		uploadRefs = append(uploadRefs, ref)
		result = append(result, models.UploadPhoto(localPath, file, ref))
	}

	if existingAlbumID != "" {
		for _, ref := range uploadRefs {
			result = append(result, models.AddPhotoToAlbum(existingAlbumID, models.Placeholder(ref)))
		}

		return result
	}

	albumRef := albumRefPrefix + dir.Path
	result = append(result, models.CreateAlbum(title, "", models.Placeholder(uploadRefs[0]), albumRef))

	for _, ref := range uploadRefs[1:] {
		result = append(result, models.AddPhotoToAlbum(models.Placeholder(albumRef), models.Placeholder(ref)))
	}

	return result
}

func (s PlannerService) imageFiles(files []string) []string {
	result := []string{}

	for _, file := range files {
		if IsImageFile(file, s.imageExtensions) {
			result = append(result, file)
		}
	}

	slices.Sort(result)
	return result
}

func firstAlbumByTitle(albums []models.Album) map[string]models.Album {
	result := map[string]models.Album{}

	for _, album := range albums {
		if _, ok := result[album.Title]; !ok {
			result[album.Title] = album
		}
	}

	return result
}
